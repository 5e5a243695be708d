package domain

import (
	"fmt"
	"strings"
	"time"
)

type HostResponse struct {
	Comment     string    `json:"comment"`
	RespondedAt time.Time `json:"respondedAt"`
}

// Review is bound one-to-one to the booking it came from; the store enforces
// the uniqueness.
type Review struct {
	ID            string        `json:"id"`
	Property      string        `json:"property"`
	User          string        `json:"user"`
	Booking       string        `json:"booking"`
	Rating        int           `json:"rating"`
	Comment       string        `json:"comment"`
	Images        []Image       `json:"images,omitempty"`
	HostResponse  *HostResponse `json:"hostResponse,omitempty"`
	IsRecommended bool          `json:"isRecommended"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	switch {
	case strings.TrimSpace(r.Comment) == "":
		return fmt.Errorf("%w: comment is required", ErrValidation)
	case len(r.Comment) > 1000:
		return fmt.Errorf("%w: comment cannot be more than 1000 characters", ErrValidation)
	}
	return nil
}

// Bump folds one new rating into the aggregate.
func (rs RatingSummary) Bump(rating int) RatingSummary {
	count := rs.Count + 1
	avg := (rs.Average*float64(rs.Count) + float64(rating)) / float64(count)
	return RatingSummary{Average: avg, Count: count}
}
