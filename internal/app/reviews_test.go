package app_test

import (
	"context"
	"errors"
	"testing"

	"homelyhub/internal/app"
	"homelyhub/internal/domain"
)

func reviewFixtures() (*fakeReviews, *fakeBookings, *fakeProps, *fakeCache) {
	bookings := &fakeBookings{byID: map[string]domain.Booking{
		bookID1: {ID: bookID1, Property: propID1, User: guestID},
	}}
	prop := activeProperty(propID1, hostID)
	prop.Rating = domain.RatingSummary{Average: 4, Count: 1}
	props := &fakeProps{byID: map[string]domain.Property{propID1: prop}}
	return &fakeReviews{}, bookings, props, &fakeCache{store: map[string]any{"property:" + propID1: prop}}
}

func TestReviewCreate(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	svc := app.NewReviewService(reviews, bookings, props, cache)

	rv, err := svc.Create(context.Background(), domain.Actor{ID: guestID, Role: domain.RoleGuest}, app.ReviewInput{
		BookingID: bookID1,
		Rating:    2,
		Comment:   "Colder than advertised.",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rv.ID != reviewID || rv.Property != propID1 || rv.User != guestID {
		t.Fatalf("review not bound to the booking: %+v", rv)
	}
	if !rv.IsRecommended {
		t.Fatal("isRecommended defaults to true")
	}

	// the aggregate folds in the new rating and the cached property drops
	if props.rating == nil || props.rating.Count != 2 || props.rating.Average != 3 {
		t.Fatalf("aggregate not bumped: %+v", props.rating)
	}
	if len(cache.deleted) != 1 {
		t.Fatal("review must invalidate the cached property")
	}
}

func TestReviewCreate_NotYourBooking(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	svc := app.NewReviewService(reviews, bookings, props, cache)

	_, err := svc.Create(context.Background(), domain.Actor{ID: otherID, Role: domain.RoleGuest}, app.ReviewInput{
		BookingID: bookID1, Rating: 5, Comment: "Great.",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReviewCreate_UnknownBooking(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	svc := app.NewReviewService(reviews, bookings, props, cache)

	_, err := svc.Create(context.Background(), domain.Actor{ID: guestID, Role: domain.RoleGuest}, app.ReviewInput{
		BookingID: "64f1b2c3d4e5f60718293c99", Rating: 5, Comment: "Great.",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewCreate_SecondReviewConflicts(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	reviews.dupe = true
	svc := app.NewReviewService(reviews, bookings, props, cache)

	_, err := svc.Create(context.Background(), domain.Actor{ID: guestID, Role: domain.RoleGuest}, app.ReviewInput{
		BookingID: bookID1, Rating: 5, Comment: "Again.",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if props.rating != nil {
		t.Fatal("a rejected review must not move the aggregate")
	}
}

func TestReviewCreate_BadRating(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	svc := app.NewReviewService(reviews, bookings, props, cache)

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(context.Background(), domain.Actor{ID: guestID, Role: domain.RoleGuest}, app.ReviewInput{
			BookingID: bookID1, Rating: rating, Comment: "x",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("rating %d: expected ErrValidation, got %v", rating, err)
		}
	}
}

func TestReviewListForProperty_LimitClamped(t *testing.T) {
	reviews, bookings, props, cache := reviewFixtures()
	svc := app.NewReviewService(reviews, bookings, props, cache)

	if _, err := svc.ListForProperty(context.Background(), propID1, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reviews.lastList != 12 {
		t.Fatalf("zero limit should fall back to the default, got %d", reviews.lastList)
	}

	if _, err := svc.ListForProperty(context.Background(), propID1, 5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reviews.lastList != 5 {
		t.Fatalf("limit not forwarded, got %d", reviews.lastList)
	}
}
