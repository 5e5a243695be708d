package app_test

import (
	"context"
	"fmt"
	"time"

	"homelyhub/internal/domain"
)

// Shared test ids, all well-formed object ids.
const (
	propID1  = "64f1b2c3d4e5f60718293a01"
	propID2  = "64f1b2c3d4e5f60718293a02"
	hostID   = "64f1b2c3d4e5f60718293b01"
	guestID  = "64f1b2c3d4e5f60718293b02"
	otherID  = "64f1b2c3d4e5f60718293b03"
	bookID1  = "64f1b2c3d4e5f60718293c01"
	reviewID = "64f1b2c3d4e5f60718293d01"
)

// ---- fakes ----

type fakeProps struct {
	byID    map[string]domain.Property
	byHost  map[string][]domain.Property
	nextID  string
	created *domain.Property
	updated *domain.Property
	rating  *domain.RatingSummary
	deleted []string
}

func (f *fakeProps) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Property{}, fmt.Errorf("%w: property %s", domain.ErrNotFound, id)
	}
	return p, nil
}

func (f *fakeProps) ListProperties(ctx context.Context, q domain.SearchQuery) ([]domain.Property, int64, error) {
	var out []domain.Property
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProps) ListByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	var out []domain.Property
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProps) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	return f.byHost[hostID], nil
}

func (f *fakeProps) CreateProperty(ctx context.Context, p domain.Property) (string, error) {
	f.created = &p
	if f.nextID == "" {
		f.nextID = propID1
	}
	return f.nextID, nil
}

func (f *fakeProps) UpdateProperty(ctx context.Context, p domain.Property) error {
	f.updated = &p
	return nil
}

func (f *fakeProps) UpdateRating(ctx context.Context, id string, r domain.RatingSummary) error {
	f.rating = &r
	return nil
}

func (f *fakeProps) DeleteProperty(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookings struct {
	byID    map[string]domain.Booking
	byUser  map[string][]domain.Booking
	created *domain.Booking
}

func (f *fakeBookings) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
	}
	return b, nil
}

func (f *fakeBookings) CreateBooking(ctx context.Context, b domain.Booking) (string, error) {
	f.created = &b
	return bookID1, nil
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return f.byUser[userID], nil
}

func (f *fakeBookings) ListByProperties(ctx context.Context, propertyIDs []string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.byID {
		for _, id := range propertyIDs {
			if b.Property == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

type fakeUsers struct {
	byID    map[string]domain.User
	updated *domain.User
}

func (f *fakeUsers) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return u, nil
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) (string, error) {
	return u.ID, nil
}

func (f *fakeUsers) UpdateUser(ctx context.Context, u domain.User) error {
	f.updated = &u
	return nil
}

type fakeReviews struct {
	created  *domain.Review
	dupe     bool
	byProp   map[string][]domain.Review
	lastList int // limit seen by ListByProperty
}

func (f *fakeReviews) CreateReview(ctx context.Context, r domain.Review) (string, error) {
	if f.dupe {
		return "", fmt.Errorf("%w: booking already reviewed", domain.ErrConflict)
	}
	f.created = &r
	return reviewID, nil
}

func (f *fakeReviews) ListByProperty(ctx context.Context, propertyID string, limit int) ([]domain.Review, error) {
	f.lastList = limit
	return f.byProp[propertyID], nil
}

type fakeCache struct {
	store   map[string]any
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.Property); ok {
		*d = v.(domain.Property)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.store, key)
	return nil
}

// ---- fixture helpers ----

func activeProperty(id, host string) domain.Property {
	return domain.Property{
		ID:          id,
		Title:       "Cedar cottage",
		Description: "Orchard cottage with valley views.",
		Host:        host,
		Location: domain.Location{
			Address: domain.Address{City: "Manali", State: "Himachal Pradesh", Country: "India", Pincode: "175131"},
		},
		Price:     1000,
		Type:      domain.TypeCottage,
		Bedrooms:  2,
		Bathrooms: 1,
		MaxGuests: 4,
		IsActive:  true,
	}
}
