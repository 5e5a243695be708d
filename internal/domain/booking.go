package domain

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Occupancy counts the guests that occupy sleeping capacity. Infants do not
// count against a property's maxGuests.
func (g Guests) Occupancy() int { return g.Adults + g.Children }

func (g Guests) Validate() error {
	if g.Adults < 1 {
		return fmt.Errorf("%w: at least 1 adult is required", ErrValidation)
	}
	if g.Children < 0 || g.Infants < 0 {
		return fmt.Errorf("%w: guest counts cannot be negative", ErrValidation)
	}
	return nil
}

type Booking struct {
	ID              string        `json:"id"`
	Property        string        `json:"property"`
	User            string        `json:"user"`
	CheckInDate     time.Time     `json:"checkInDate"`
	CheckOutDate    time.Time     `json:"checkOutDate"`
	Guests          Guests        `json:"guests"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	BookingStatus   BookingStatus `json:"bookingStatus"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// TotalNights is derived, never stored.
func (b Booking) TotalNights() int { return Nights(b.CheckInDate, b.CheckOutDate) }

// Nights counts the nights between check-in and check-out, rounding a
// partial day up to a full night. Zero or negative means the range is
// invalid and must be rejected by the caller.
func Nights(checkIn, checkOut time.Time) int {
	const day = 24 * time.Hour
	d := checkOut.Sub(checkIn)
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}

// Quote computes the stay length and total charge for a date range at a
// nightly price. Pure: no I/O, no clock.
func Quote(checkIn, checkOut time.Time, nightlyPrice float64) (nights int, total float64, err error) {
	nights = Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, 0, fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}
	return nights, float64(nights) * nightlyPrice, nil
}
