package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"homelyhub/internal/domain"
)

// BSON documents per collection. The domain stays driver-free; conversion
// happens only here.

type imageDoc struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Role      string             `bson:"role"`
	Avatar    *imageDoc          `bson:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type addressDoc struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	Country string `bson:"country"`
	Pincode string `bson:"pincode"`
}

type coordinatesDoc struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type locationDoc struct {
	Address     addressDoc      `bson:"address"`
	Coordinates *coordinatesDoc `bson:"coordinates,omitempty"`
}

type ratingDoc struct {
	Average float64 `bson:"average"`
	Count   int     `bson:"count"`
}

type propertyDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Host         primitive.ObjectID `bson:"host"`
	Location     locationDoc        `bson:"location"`
	Price        float64            `bson:"price"`
	Images       []imageDoc         `bson:"images"`
	Amenities    []string           `bson:"amenities"`
	Type         string             `bson:"type"`
	Bedrooms     int                `bson:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms"`
	MaxGuests    int                `bson:"maxGuests"`
	CheckInTime  string             `bson:"checkInTime"`
	CheckOutTime string             `bson:"checkOutTime"`
	HouseRules   []string           `bson:"houseRules,omitempty"`
	IsActive     bool               `bson:"isActive"`
	Rating       ratingDoc          `bson:"rating"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type guestsDoc struct {
	Adults   int `bson:"adults"`
	Children int `bson:"children"`
	Infants  int `bson:"infants"`
}

type bookingDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Property        primitive.ObjectID `bson:"property"`
	User            primitive.ObjectID `bson:"user"`
	CheckInDate     time.Time          `bson:"checkInDate"`
	CheckOutDate    time.Time          `bson:"checkOutDate"`
	Guests          guestsDoc          `bson:"guests"`
	TotalAmount     float64            `bson:"totalAmount"`
	PaymentStatus   string             `bson:"paymentStatus"`
	BookingStatus   string             `bson:"bookingStatus"`
	SpecialRequests string             `bson:"specialRequests,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

type hostResponseDoc struct {
	Comment     string    `bson:"comment"`
	RespondedAt time.Time `bson:"respondedAt"`
}

type reviewDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Property      primitive.ObjectID `bson:"property"`
	User          primitive.ObjectID `bson:"user"`
	Booking       primitive.ObjectID `bson:"booking"`
	Rating        int                `bson:"rating"`
	Comment       string             `bson:"comment"`
	Images        []imageDoc         `bson:"images,omitempty"`
	HostResponse  *hostResponseDoc   `bson:"hostResponse,omitempty"`
	IsRecommended bool               `bson:"isRecommended"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// ---- conversions ----

func toImageDocs(imgs []domain.Image) []imageDoc {
	out := make([]imageDoc, 0, len(imgs))
	for _, i := range imgs {
		out = append(out, imageDoc{URL: i.URL, PublicID: i.PublicID})
	}
	return out
}

func fromImageDocs(docs []imageDoc) []domain.Image {
	out := make([]domain.Image, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Image{URL: d.URL, PublicID: d.PublicID})
	}
	return out
}

func toUserDoc(u domain.User) (userDoc, error) {
	d := userDoc{
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.ID != "" {
		id, err := oid(u.ID)
		if err != nil {
			return userDoc{}, err
		}
		d.ID = id
	}
	if u.Avatar != nil {
		d.Avatar = &imageDoc{URL: u.Avatar.URL, PublicID: u.Avatar.PublicID}
	}
	return d, nil
}

func fromUserDoc(d userDoc) domain.User {
	u := domain.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Role:      domain.Role(d.Role),
		CreatedAt: d.CreatedAt,
	}
	if d.Avatar != nil {
		u.Avatar = &domain.Image{URL: d.Avatar.URL, PublicID: d.Avatar.PublicID}
	}
	return u
}

func toPropertyDoc(p domain.Property) (propertyDoc, error) {
	host, err := oid(p.Host)
	if err != nil {
		return propertyDoc{}, err
	}
	amen := make([]string, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		amen = append(amen, string(a))
	}
	d := propertyDoc{
		Title:       p.Title,
		Description: p.Description,
		Host:        host,
		Location: locationDoc{
			Address: addressDoc(p.Location.Address),
		},
		Price:        p.Price,
		Images:       toImageDocs(p.Images),
		Amenities:    amen,
		Type:         string(p.Type),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		MaxGuests:    p.MaxGuests,
		CheckInTime:  p.CheckInTime,
		CheckOutTime: p.CheckOutTime,
		HouseRules:   p.HouseRules,
		IsActive:     p.IsActive,
		Rating:       ratingDoc(p.Rating),
		CreatedAt:    p.CreatedAt,
	}
	if p.Location.Coordinates != nil {
		c := coordinatesDoc(*p.Location.Coordinates)
		d.Location.Coordinates = &c
	}
	if p.ID != "" {
		id, err := oid(p.ID)
		if err != nil {
			return propertyDoc{}, err
		}
		d.ID = id
	}
	return d, nil
}

func fromPropertyDoc(d propertyDoc) domain.Property {
	amen := make([]domain.Amenity, 0, len(d.Amenities))
	for _, a := range d.Amenities {
		amen = append(amen, domain.Amenity(a))
	}
	p := domain.Property{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Host:        d.Host.Hex(),
		Location: domain.Location{
			Address: domain.Address(d.Location.Address),
		},
		Price:        d.Price,
		Images:       fromImageDocs(d.Images),
		Amenities:    amen,
		Type:         domain.PropertyType(d.Type),
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		MaxGuests:    d.MaxGuests,
		CheckInTime:  d.CheckInTime,
		CheckOutTime: d.CheckOutTime,
		HouseRules:   d.HouseRules,
		IsActive:     d.IsActive,
		Rating:       domain.RatingSummary(d.Rating),
		CreatedAt:    d.CreatedAt,
	}
	if d.Location.Coordinates != nil {
		c := domain.Coordinates(*d.Location.Coordinates)
		p.Location.Coordinates = &c
	}
	return p
}

func toBookingDoc(b domain.Booking) (bookingDoc, error) {
	prop, err := oid(b.Property)
	if err != nil {
		return bookingDoc{}, err
	}
	user, err := oid(b.User)
	if err != nil {
		return bookingDoc{}, err
	}
	d := bookingDoc{
		Property:        prop,
		User:            user,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		Guests:          guestsDoc(b.Guests),
		TotalAmount:     b.TotalAmount,
		PaymentStatus:   string(b.PaymentStatus),
		BookingStatus:   string(b.BookingStatus),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
	if b.ID != "" {
		id, err := oid(b.ID)
		if err != nil {
			return bookingDoc{}, err
		}
		d.ID = id
	}
	return d, nil
}

func fromBookingDoc(d bookingDoc) domain.Booking {
	return domain.Booking{
		ID:              d.ID.Hex(),
		Property:        d.Property.Hex(),
		User:            d.User.Hex(),
		CheckInDate:     d.CheckInDate,
		CheckOutDate:    d.CheckOutDate,
		Guests:          domain.Guests(d.Guests),
		TotalAmount:     d.TotalAmount,
		PaymentStatus:   domain.PaymentStatus(d.PaymentStatus),
		BookingStatus:   domain.BookingStatus(d.BookingStatus),
		SpecialRequests: d.SpecialRequests,
		CreatedAt:       d.CreatedAt,
	}
}

func toReviewDoc(r domain.Review) (reviewDoc, error) {
	prop, err := oid(r.Property)
	if err != nil {
		return reviewDoc{}, err
	}
	user, err := oid(r.User)
	if err != nil {
		return reviewDoc{}, err
	}
	booking, err := oid(r.Booking)
	if err != nil {
		return reviewDoc{}, err
	}
	d := reviewDoc{
		Property:      prop,
		User:          user,
		Booking:       booking,
		Rating:        r.Rating,
		Comment:       r.Comment,
		Images:        toImageDocs(r.Images),
		IsRecommended: r.IsRecommended,
		CreatedAt:     r.CreatedAt,
	}
	if len(r.Images) == 0 {
		d.Images = nil
	}
	if r.HostResponse != nil {
		d.HostResponse = &hostResponseDoc{Comment: r.HostResponse.Comment, RespondedAt: r.HostResponse.RespondedAt}
	}
	if r.ID != "" {
		id, err := oid(r.ID)
		if err != nil {
			return reviewDoc{}, err
		}
		d.ID = id
	}
	return d, nil
}

func fromReviewDoc(d reviewDoc) domain.Review {
	r := domain.Review{
		ID:            d.ID.Hex(),
		Property:      d.Property.Hex(),
		User:          d.User.Hex(),
		Booking:       d.Booking.Hex(),
		Rating:        d.Rating,
		Comment:       d.Comment,
		Images:        fromImageDocs(d.Images),
		IsRecommended: d.IsRecommended,
		CreatedAt:     d.CreatedAt,
	}
	if len(d.Images) == 0 {
		r.Images = nil
	}
	if d.HostResponse != nil {
		r.HostResponse = &domain.HostResponse{Comment: d.HostResponse.Comment, RespondedAt: d.HostResponse.RespondedAt}
	}
	return r
}
