package domain

import (
	"fmt"
	"strings"
	"time"
)

type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
	TypeVilla     PropertyType = "villa"
	TypeCottage   PropertyType = "cottage"
	TypeFarmhouse PropertyType = "farmhouse"
	TypeStudio    PropertyType = "studio"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeVilla, TypeCottage, TypeFarmhouse, TypeStudio:
		return true
	}
	return false
}

type Amenity string

var knownAmenities = map[Amenity]struct{}{
	"wifi": {}, "kitchen": {}, "parking": {}, "pool": {}, "ac": {}, "tv": {},
	"washingMachine": {}, "breakfast": {}, "gym": {}, "hotTub": {},
	"fireplace": {}, "balcony": {}, "garden": {}, "bbq": {},
}

func (a Amenity) Valid() bool {
	_, ok := knownAmenities[a]
	return ok
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     Address      `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// RatingSummary is the aggregate kept on the property and bumped whenever a
// review lands.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Property struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Host         string        `json:"host"`
	Location     Location      `json:"location"`
	Price        float64       `json:"price"`
	Images       []Image       `json:"images"`
	Amenities    []Amenity     `json:"amenities"`
	Type         PropertyType  `json:"type"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    int           `json:"bathrooms"`
	MaxGuests    int           `json:"maxGuests"`
	CheckInTime  string        `json:"checkInTime"`
	CheckOutTime string        `json:"checkOutTime"`
	HouseRules   []string      `json:"houseRules,omitempty"`
	IsActive     bool          `json:"isActive"`
	Rating       RatingSummary `json:"rating"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ApplyDefaults fills the server-assigned defaults for a newly created
// property. Call before Validate.
func (p *Property) ApplyDefaults() {
	if p.CheckInTime == "" {
		p.CheckInTime = "14:00"
	}
	if p.CheckOutTime == "" {
		p.CheckOutTime = "12:00"
	}
	if p.Location.Address.Country == "" {
		p.Location.Address.Country = "India"
	}
	p.IsActive = true
	p.Rating = RatingSummary{}
}

func (p *Property) Validate() error {
	title := strings.TrimSpace(p.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case len(title) > 100:
		return fmt.Errorf("%w: title cannot be more than 100 characters", ErrValidation)
	}
	switch {
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case len(p.Description) > 2000:
		return fmt.Errorf("%w: description cannot be more than 2000 characters", ErrValidation)
	}
	if !ValidID(p.Host) {
		return fmt.Errorf("%w: invalid host id", ErrValidation)
	}
	if p.Location.Address.City == "" || p.Location.Address.State == "" || p.Location.Address.Pincode == "" {
		return fmt.Errorf("%w: location city, state and pincode are required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: invalid property type %q", ErrValidation, p.Type)
	}
	for _, a := range p.Amenities {
		if !a.Valid() {
			return fmt.Errorf("%w: unknown amenity %q", ErrValidation, a)
		}
	}
	if p.Bedrooms < 1 || p.Bathrooms < 1 || p.MaxGuests < 1 {
		return fmt.Errorf("%w: bedrooms, bathrooms and maxGuests must be at least 1", ErrValidation)
	}
	return nil
}

// PropertyUpdate is a partial mutation of a property's client-editable
// fields. Host, rating and createdAt are never client-writable.
type PropertyUpdate struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Location     *Location     `json:"location"`
	Price        *float64      `json:"price"`
	Images       []Image       `json:"images"`
	Amenities    []Amenity     `json:"amenities"`
	Type         *PropertyType `json:"type"`
	Bedrooms     *int          `json:"bedrooms"`
	Bathrooms    *int          `json:"bathrooms"`
	MaxGuests    *int          `json:"maxGuests"`
	CheckInTime  *string       `json:"checkInTime"`
	CheckOutTime *string       `json:"checkOutTime"`
	HouseRules   []string      `json:"houseRules"`
	IsActive     *bool         `json:"isActive"`
}

func (upd PropertyUpdate) Apply(p *Property) {
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Images != nil {
		p.Images = upd.Images
	}
	if upd.Amenities != nil {
		p.Amenities = upd.Amenities
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = *upd.Bathrooms
	}
	if upd.MaxGuests != nil {
		p.MaxGuests = *upd.MaxGuests
	}
	if upd.CheckInTime != nil {
		p.CheckInTime = *upd.CheckInTime
	}
	if upd.CheckOutTime != nil {
		p.CheckOutTime = *upd.CheckOutTime
	}
	if upd.HouseRules != nil {
		p.HouseRules = upd.HouseRules
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
}
