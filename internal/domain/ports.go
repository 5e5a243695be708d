package domain

import (
	"context"
	"time"
)

// ---- queries ----

type FilterOp string

// The full operator vocabulary. Anything else in a filter key is rejected;
// operator-looking strings in filter values are plain values.
const (
	OpEq  FilterOp = "eq"
	OpNe  FilterOp = "ne"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// Condition is one node of the typed filter tree. Values holds one element
// except for OpIn.
type Condition struct {
	Field  string
	Op     FilterOp
	Values []any
}

type SortKey struct {
	Field string
	Desc  bool
}

type SearchQuery struct {
	Conditions []Condition
	Search     string // case-insensitive substring over title, city, state
	Select     []string
	Sort       []SortKey
	Page       int // 1-indexed
	Limit      int
}

func (q SearchQuery) Skip() int { return (q.Page - 1) * q.Limit }

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// ---- read models ----

type PropertyPage struct {
	Items      []Property `json:"data"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
}

// PropertySummary is the denormalized slice of a property embedded in
// booking views, so clients don't need a follow-up fetch.
type PropertySummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Images   []Image  `json:"images"`
	Location Location `json:"location"`
	Price    float64  `json:"price"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type BookingView struct {
	Booking
	TotalNights int              `json:"totalNights"`
	PropertyRef *PropertySummary `json:"propertyDetails,omitempty"`
	UserRef     *UserSummary     `json:"userDetails,omitempty"`
}

func NewBookingView(b Booking) BookingView {
	return BookingView{Booking: b, TotalNights: b.TotalNights()}
}

// ---- ports ----

type UserRepository interface {
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, u User) (string, error)
	UpdateUser(ctx context.Context, u User) error
}

type PropertyRepository interface {
	GetProperty(ctx context.Context, id string) (Property, error)
	ListProperties(ctx context.Context, q SearchQuery) (items []Property, total int64, err error)
	ListByIDs(ctx context.Context, ids []string) ([]Property, error)
	ListByHost(ctx context.Context, hostID string) ([]Property, error)
	CreateProperty(ctx context.Context, p Property) (string, error)
	UpdateProperty(ctx context.Context, p Property) error
	UpdateRating(ctx context.Context, id string, r RatingSummary) error
	DeleteProperty(ctx context.Context, id string) error
}

type BookingRepository interface {
	GetBooking(ctx context.Context, id string) (Booking, error)
	CreateBooking(ctx context.Context, b Booking) (string, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListByProperties(ctx context.Context, propertyIDs []string) ([]Booking, error)
}

type ReviewRepository interface {
	// CreateReview returns ErrConflict when the booking already has a review.
	CreateReview(ctx context.Context, r Review) (string, error)
	ListByProperty(ctx context.Context, propertyID string, limit int) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ImageStore is the upload collaborator. Failures must not corrupt the
// entity store; callers attach image metadata only after a successful upload.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, filename string) (Image, error)
	Delete(ctx context.Context, publicID string) error
}
