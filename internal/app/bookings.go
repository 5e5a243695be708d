package app

import (
	"context"
	"fmt"
	"time"

	"homelyhub/internal/domain"
)

type BookingService struct {
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	users      domain.UserRepository
	now        func() time.Time
}

func NewBookingService(b domain.BookingRepository, p domain.PropertyRepository, u domain.UserRepository) *BookingService {
	return &BookingService{bookings: b, properties: p, users: u, now: time.Now}
}

// BookingInput is the validated request for the booking workflow.
type BookingInput struct {
	PropertyID      string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Guests          domain.Guests
	SpecialRequests string
}

// Create runs the booking workflow: resolve the property, validate dates and
// guests, snapshot the price, persist, and return a denormalized view.
func (s *BookingService) Create(ctx context.Context, actor domain.Actor, in BookingInput) (domain.BookingView, error) {
	if err := requireActor(actor); err != nil {
		return domain.BookingView{}, err
	}
	if err := requireID(in.PropertyID, "property"); err != nil {
		return domain.BookingView{}, err
	}

	p, err := s.properties.GetProperty(ctx, in.PropertyID)
	if err != nil {
		return domain.BookingView{}, err
	}
	if !p.IsActive {
		return domain.BookingView{}, fmt.Errorf("%w: property not found", domain.ErrNotFound)
	}

	if err := in.Guests.Validate(); err != nil {
		return domain.BookingView{}, err
	}
	if in.Guests.Occupancy() > p.MaxGuests {
		return domain.BookingView{}, fmt.Errorf("%w: property sleeps at most %d guests", domain.ErrValidation, p.MaxGuests)
	}

	// The total is snapshotted from the property's current nightly price;
	// later price edits never touch existing bookings.
	_, total, err := domain.Quote(in.CheckInDate, in.CheckOutDate, p.Price)
	if err != nil {
		return domain.BookingView{}, err
	}

	b := domain.Booking{
		Property:        p.ID,
		User:            actor.ID,
		CheckInDate:     in.CheckInDate,
		CheckOutDate:    in.CheckOutDate,
		Guests:          in.Guests,
		TotalAmount:     total,
		PaymentStatus:   domain.PaymentPending,
		BookingStatus:   domain.BookingConfirmed,
		SpecialRequests: in.SpecialRequests,
		CreatedAt:       s.now().UTC(),
	}
	id, err := s.bookings.CreateBooking(ctx, b)
	if err != nil {
		return domain.BookingView{}, err
	}
	b.ID = id

	view := domain.NewBookingView(b)
	view.PropertyRef = summarizeProperty(p)
	if u, uerr := s.users.GetUser(ctx, actor.ID); uerr == nil {
		view.UserRef = summarizeUser(u, false)
	}
	return view, nil
}

// ListForGuest returns the caller's bookings, newest first, with embedded
// property summaries.
func (s *BookingService) ListForGuest(ctx context.Context, actor domain.Actor) ([]domain.BookingView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	bs, err := s.bookings.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bs, false), nil
}

// Get returns one booking. Only the guest who made it or an admin may read
// through this path; hosts use ListForHost.
func (s *BookingService) Get(ctx context.Context, actor domain.Actor, id string) (domain.BookingView, error) {
	if err := requireActor(actor); err != nil {
		return domain.BookingView{}, err
	}
	if err := requireID(id, "booking"); err != nil {
		return domain.BookingView{}, err
	}
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if !actor.CanViewBooking(b) {
		return domain.BookingView{}, fmt.Errorf("%w: not authorized to view this booking", domain.ErrForbidden)
	}

	view := domain.NewBookingView(b)
	if p, perr := s.properties.GetProperty(ctx, b.Property); perr == nil {
		view.PropertyRef = summarizeProperty(p)
	}
	if u, uerr := s.users.GetUser(ctx, b.User); uerr == nil {
		view.UserRef = summarizeUser(u, true)
	}
	return view, nil
}

// ListForHost returns the bookings made against any of the actor's
// properties. Authorization here is property ownership, not booking
// ownership.
func (s *BookingService) ListForHost(ctx context.Context, actor domain.Actor) ([]domain.BookingView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	props, err := s.properties.ListByHost(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	bs, err := s.bookings.ListByProperties(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bs, true), nil
}

// enrich attaches denormalized property and user summaries to each booking.
// Lookups are best effort: a missing reference leaves the summary nil rather
// than failing the listing.
func (s *BookingService) enrich(ctx context.Context, bs []domain.Booking, withGuest bool) []domain.BookingView {
	propIDs := make([]string, 0, len(bs))
	seen := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		if _, ok := seen[b.Property]; !ok {
			seen[b.Property] = struct{}{}
			propIDs = append(propIDs, b.Property)
		}
	}
	propByID := make(map[string]domain.Property, len(propIDs))
	if props, err := s.properties.ListByIDs(ctx, propIDs); err == nil {
		for _, p := range props {
			propByID[p.ID] = p
		}
	}

	userByID := make(map[string]domain.User)
	views := make([]domain.BookingView, 0, len(bs))
	for _, b := range bs {
		v := domain.NewBookingView(b)
		if p, ok := propByID[b.Property]; ok {
			v.PropertyRef = summarizeProperty(p)
		}
		if withGuest {
			u, ok := userByID[b.User]
			if !ok {
				if fetched, err := s.users.GetUser(ctx, b.User); err == nil {
					u, ok = fetched, true
					userByID[b.User] = fetched
				}
			}
			if ok {
				v.UserRef = summarizeUser(u, true)
			}
		}
		views = append(views, v)
	}
	return views
}

func summarizeProperty(p domain.Property) *domain.PropertySummary {
	return &domain.PropertySummary{
		ID:       p.ID,
		Title:    p.Title,
		Images:   p.Images,
		Location: p.Location,
		Price:    p.Price,
	}
}

func summarizeUser(u domain.User, withPhone bool) *domain.UserSummary {
	s := &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	if withPhone {
		s.Phone = u.Phone
	}
	return s
}
