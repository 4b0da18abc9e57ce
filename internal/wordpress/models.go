package wordpress

import (
	"encoding/json"
	"fmt"
	"time"

	"brewmeet.app/server/common"
)

// RenderedText handles the two shapes WordPress uses for text fields: a plain
// string, or an object with a "rendered" member. Either way the decoded,
// entity-unescaped text is what the rest of the system sees; the polymorphism
// must not leak past this package.
type RenderedText struct {
	raw string
}

// NewRenderedText wraps a plain string in the polymorphic text type.
func NewRenderedText(s string) RenderedText {
	return RenderedText{raw: s}
}

func (t *RenderedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.raw = s
		return nil
	}

	var obj struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshaling rendered text: %w", err)
	}
	t.raw = obj.Rendered
	return nil
}

func (t RenderedText) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

// Raw returns the text as received, entities and markup included.
func (t RenderedText) Raw() string {
	return t.raw
}

// Text returns the entity-decoded, whitespace-normalized form.
func (t RenderedText) Text() string {
	return common.CleanText(t.raw)
}

// PlainText additionally strips HTML markup.
func (t RenderedText) PlainText() string {
	return common.StripHTML(t.raw)
}

// RemoteOrganizer is an organizer record attached to a remote event.
type RemoteOrganizer struct {
	Organizer RenderedText `json:"organizer"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Website   string       `json:"website"`
	ID        int64        `json:"id"`
}

// OrganizerList absorbs the organizer field's two shapes: a single object or
// an array of objects.
type OrganizerList []RemoteOrganizer

func (l *OrganizerList) UnmarshalJSON(data []byte) error {
	var many []RemoteOrganizer
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one RemoteOrganizer
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("unmarshaling organizer list: %w", err)
	}
	*l = OrganizerList{one}
	return nil
}

// First returns the first organizer carrying a name, or nil.
func (l OrganizerList) First() *RemoteOrganizer {
	for i := range l {
		if l[i].Organizer.Text() != "" {
			return &l[i]
		}
	}
	return nil
}

// RemoteVenue is a venue record from the Events Calendar API. The name lives
// under the "venue" key.
type RemoteVenue struct {
	Name     RenderedText `json:"venue"`
	Address  string       `json:"address"`
	City     string       `json:"city"`
	Province string       `json:"stateprovince"`
	Zip      string       `json:"zip"`
	ID       int64        `json:"id"`
}

// RemoteEvent is one event record from the Events Calendar API.
type RemoteEvent struct {
	Title       RenderedText  `json:"title"`
	Description RenderedText  `json:"description"`
	StartDate   string        `json:"start_date"`
	Modified    string        `json:"modified"`
	Status      string        `json:"status"`
	URL         string        `json:"url"`
	Image       *RemoteImage  `json:"image,omitempty"`
	Venue       *RemoteVenue  `json:"venue,omitempty"`
	Organizer   OrganizerList `json:"organizer,omitempty"`
	ID          int64         `json:"id"`
}

type RemoteImage struct {
	URL string `json:"url"`
}

type eventsPage struct {
	Events []RemoteEvent `json:"events"`
}

type venuesPage struct {
	Venues []RemoteVenue `json:"venues"`
}

// TimeLayout is the site-local timestamp format the Events Calendar emits.
const TimeLayout = "2006-01-02 15:04:05"

// ParseTime parses a WordPress timestamp. The Events Calendar emits
// site-local "2006-01-02 15:04:05"; core WP fields use RFC 3339.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing wordpress timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseTimePtr is ParseTime for optional fields: unparseable or empty input
// yields nil rather than an error.
func ParseTimePtr(s string) *time.Time {
	t, err := ParseTime(s)
	if err != nil {
		return nil
	}
	return &t
}
