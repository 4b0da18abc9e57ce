package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"brewmeet.app/server/common/id"
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/service"
	"brewmeet.app/server/internal/store"
	"brewmeet.app/server/internal/wordpress"
)

const fallbackVenueID int64 = 1

var _ = Describe("VenueReconciler", func() {
	var (
		reconciler *service.VenueReconciler
		venues     *mockVenueStore
		mappings   *mockVenueMappingStore
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		venues = &mockVenueStore{}
		mappings = &mockVenueMappingStore{}
		reconciler = service.NewVenueReconciler(venues, mappings, fallbackVenueID)

		Expect(id.Init(1)).To(Succeed())
	})

	remoteVenue := func(remoteID int64, name string) *wordpress.RemoteVenue {
		return &wordpress.RemoteVenue{
			ID:      remoteID,
			Name:    wordpress.NewRenderedText(name),
			Address: "12 Bean St",
			City:    "Portland",
		}
	}

	Context("when the remote venue is absent or unnamed", func() {
		It("returns the fallback venue for a nil venue", func() {
			res, err := reconciler.HandleVenue(ctx, nil, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(fallbackVenueID))
			Expect(res.Created).To(BeFalse())
		})

		It("returns the fallback venue for an unnamed venue", func() {
			res, err := reconciler.HandleVenue(ctx, &wordpress.RemoteVenue{ID: 900}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(fallbackVenueID))
		})
	})

	Context("when a mapping already exists", func() {
		It("returns the mapped venue without re-matching", func() {
			mappings.getByWordPressVenueIDFn = func(_ context.Context, remoteID int64) (*model.VenueMapping, error) {
				Expect(remoteID).To(Equal(int64(900)))
				return &model.VenueMapping{WordPressVenueID: 900, VenueID: 77}, nil
			}
			venues.findByNameFn = func(_ context.Context, _ string) (*model.Venue, error) {
				Fail("name matching must not run when a mapping exists")
				return nil, nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(int64(77)))
			Expect(res.Created).To(BeFalse())
		})
	})

	Context("when a local venue matches by exact name", func() {
		It("creates a mapping and reports no creation", func() {
			var createdMapping *model.VenueMapping
			venues.findByNameFn = func(_ context.Context, name string) (*model.Venue, error) {
				Expect(name).To(Equal("Roastery Annex"))
				return &model.Venue{ID: 55, Name: "Roastery Annex"}, nil
			}
			mappings.createFn = func(_ context.Context, m *model.VenueMapping) error {
				createdMapping = m
				return nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(int64(55)))
			Expect(res.Created).To(BeFalse())
			Expect(createdMapping).NotTo(BeNil())
			Expect(createdMapping.WordPressVenueID).To(Equal(int64(900)))
			Expect(createdMapping.VenueID).To(Equal(int64(55)))
		})
	})

	Context("when only name plus city matches", func() {
		It("falls through to the city match", func() {
			venues.findByNameAndCityFn = func(_ context.Context, name, city string) (*model.Venue, error) {
				Expect(name).To(Equal("Roastery Annex"))
				Expect(city).To(Equal("Portland"))
				return &model.Venue{ID: 56}, nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(int64(56)))
			Expect(res.Created).To(BeFalse())
		})
	})

	Context("when nothing matches", func() {
		It("creates a venue with sanitized fields and a mapping", func() {
			var createdVenue *model.Venue
			var createdMapping *model.VenueMapping
			venues.createFn = func(_ context.Context, v *model.Venue) error {
				createdVenue = v
				return nil
			}
			mappings.createFn = func(_ context.Context, m *model.VenueMapping) error {
				createdMapping = m
				return nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Bar &#038; Grill"), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Created).To(BeTrue())
			Expect(createdVenue).NotTo(BeNil())
			Expect(createdVenue.Name).To(Equal("Bar & Grill"))
			Expect(createdVenue.IsActive).To(BeTrue())
			Expect(createdVenue.City).To(HaveValue(Equal("Portland")))
			Expect(createdMapping).NotTo(BeNil())
			Expect(res.VenueID).To(Equal(createdVenue.ID))
		})

		It("synthesizes a placeholder when the name decodes to nothing", func() {
			var createdVenue *model.Venue
			venues.createFn = func(_ context.Context, v *model.Venue) error {
				createdVenue = v
				return nil
			}

			res, err := reconciler.HandleVenue(ctx, &wordpress.RemoteVenue{
				ID:   901,
				Name: wordpress.NewRenderedText("&nbsp; &nbsp;"),
			}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Created).To(BeTrue())
			Expect(createdVenue.Name).To(Equal("WordPress Venue 901"))
		})
	})

	Context("when running dry", func() {
		It("writes nothing for a would-be creation", func() {
			venues.createFn = func(_ context.Context, _ *model.Venue) error {
				Fail("dry run must not create venues")
				return nil
			}
			mappings.createFn = func(_ context.Context, _ *model.VenueMapping) error {
				Fail("dry run must not create mappings")
				return nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Created).To(BeTrue())
		})

		It("skips mapping creation even for a name match", func() {
			venues.findByNameFn = func(_ context.Context, _ string) (*model.Venue, error) {
				return &model.Venue{ID: 55}, nil
			}
			mappings.createFn = func(_ context.Context, _ *model.VenueMapping) error {
				Fail("dry run must not create mappings")
				return nil
			}

			res, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.VenueID).To(Equal(int64(55)))
			Expect(res.Created).To(BeFalse())
		})
	})

	It("propagates unexpected store errors", func() {
		mappings.getByWordPressVenueIDFn = func(_ context.Context, _ int64) (*model.VenueMapping, error) {
			return nil, context.DeadlineExceeded
		}

		_, err := reconciler.HandleVenue(ctx, remoteVenue(900, "Roastery Annex"), false)
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(store.ErrNotFound))
	})
})
