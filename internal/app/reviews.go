package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"homelyhub/internal/domain"
)

type ReviewService struct {
	reviews    domain.ReviewRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	cache      domain.Cache
	now        func() time.Time
}

func NewReviewService(r domain.ReviewRepository, b domain.BookingRepository, p domain.PropertyRepository, c domain.Cache) *ReviewService {
	return &ReviewService{reviews: r, bookings: b, properties: p, cache: c, now: time.Now}
}

type ReviewInput struct {
	BookingID     string
	Rating        int
	Comment       string
	Images        []domain.Image
	IsRecommended *bool
}

// Create posts the one review a booking may ever have. The store's unique
// index is what actually defends the invariant; a duplicate surfaces as
// ErrConflict.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, in ReviewInput) (domain.Review, error) {
	if err := requireActor(actor); err != nil {
		return domain.Review{}, err
	}
	if err := requireID(in.BookingID, "booking"); err != nil {
		return domain.Review{}, err
	}
	b, err := s.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		return domain.Review{}, err
	}
	if !actor.CanModify(b.User) {
		return domain.Review{}, fmt.Errorf("%w: not authorized to review this booking", domain.ErrForbidden)
	}

	rec := true
	if in.IsRecommended != nil {
		rec = *in.IsRecommended
	}
	rv := domain.Review{
		Property:      b.Property,
		User:          b.User,
		Booking:       b.ID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		Images:        in.Images,
		IsRecommended: rec,
		CreatedAt:     s.now().UTC(),
	}
	if err := rv.Validate(); err != nil {
		return domain.Review{}, err
	}
	id, err := s.reviews.CreateReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id

	// Fold the rating into the property aggregate. Best effort: the review
	// is already durable, so a failed bump only logs.
	if p, perr := s.properties.GetProperty(ctx, b.Property); perr == nil {
		if uerr := s.properties.UpdateRating(ctx, p.ID, p.Rating.Bump(rv.Rating)); uerr != nil {
			log.Warn().Str("property", p.ID).Err(uerr).Msg("rating aggregate update failed")
		}
		_ = s.cache.Del(ctx, propertyKey(p.ID))
	}
	return rv, nil
}

func (s *ReviewService) ListForProperty(ctx context.Context, propertyID string, limit int) ([]domain.Review, error) {
	if err := requireID(propertyID, "property"); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.reviews.ListByProperty(ctx, propertyID, limit)
}
