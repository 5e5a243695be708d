package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"homelyhub/internal/app"
	"homelyhub/internal/domain"
)

const maxUploadBytes = 25 << 20

type Handlers struct {
	Properties *app.PropertyService
	Bookings   *app.BookingService
	Reviews    *app.ReviewService
	Uploads    *app.UploadService
	Users      *app.UserService

	validate *validator.Validate
}

// envelope is the stable response shape: {success, message?, ...}.
type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Count      *int               `json:"count,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Data       any                `json:"data,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, auth *TokenVerifier) {
	if h.validate == nil {
		h.validate = validator.New()
	}

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.searchProperties)
			r.With(auth.RequireAuth).Post("/", h.createProperty)
			r.With(auth.RequireAuth).Get("/user/my-properties", h.hostProperties)
			r.Get("/{id}", h.getProperty)
			r.Get("/{id}/reviews", h.listPropertyReviews)
			r.With(auth.RequireAuth).Put("/{id}", h.updateProperty)
			r.With(auth.RequireAuth).Delete("/{id}", h.deleteProperty)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", h.createBooking)
			r.Get("/", h.listBookings)
			r.Get("/host/my-bookings", h.listHostBookings)
			r.Get("/{id}", h.getBooking)
		})

		r.With(auth.RequireAuth).Post("/reviews", h.createReview)

		r.Route("/auth", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/me", h.me)
			r.Put("/me", h.updateProfile)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/image", h.uploadImage)
			r.Delete("/image", h.deleteImage)
		})
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Server is running",
		Data:    map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
	})
}

// ---- properties ----

type propertyReq struct {
	Title        string              `json:"title" validate:"required,max=100"`
	Description  string              `json:"description" validate:"required,max=2000"`
	Location     domain.Location     `json:"location"`
	Price        float64             `json:"price" validate:"gte=0"`
	Images       []domain.Image      `json:"images"`
	Amenities    []domain.Amenity    `json:"amenities"`
	Type         domain.PropertyType `json:"type" validate:"required"`
	Bedrooms     int                 `json:"bedrooms" validate:"gte=1"`
	Bathrooms    int                 `json:"bathrooms" validate:"gte=1"`
	MaxGuests    int                 `json:"maxGuests" validate:"gte=1"`
	CheckInTime  string              `json:"checkInTime"`
	CheckOutTime string              `json:"checkOutTime"`
	HouseRules   []string            `json:"houseRules"`
}

func (req propertyReq) toDomain() domain.Property {
	return domain.Property{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Price:        req.Price,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Type:         req.Type,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		MaxGuests:    req.MaxGuests,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		HouseRules:   req.HouseRules,
	}
}

func (h *Handlers) searchProperties(w http.ResponseWriter, r *http.Request) {
	q, err := app.ParseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Properties.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		Count:      &page.Count,
		Pagination: &page.Pagination,
		Data:       orEmpty(page.Items),
	})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.Properties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: p})
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyReq
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.Properties.Create(r.Context(), actorFrom(r), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: p})
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	var upd domain.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return
	}
	p, err := h.Properties.Update(r.Context(), actorFrom(r), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: p})
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.Properties.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Property deleted successfully"})
}

func (h *Handlers) hostProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Properties.HostProperties(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	n := len(props)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: orEmpty(props)})
}

// ---- bookings ----

type bookingReq struct {
	PropertyID      string        `json:"propertyId" validate:"required,len=24,hexadecimal"`
	CheckInDate     string        `json:"checkInDate" validate:"required"`
	CheckOutDate    string        `json:"checkOutDate" validate:"required"`
	Guests          domain.Guests `json:"guests"`
	SpecialRequests string        `json:"specialRequests"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingReq
	if !h.decode(w, r, &req) {
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid checkInDate", domain.ErrValidation))
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid checkOutDate", domain.ErrValidation))
		return
	}
	view, err := h.Bookings.Create(r.Context(), actorFrom(r), app.BookingInput{
		PropertyID:      req.PropertyID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: "Booking created successfully", Data: view})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	views, err := h.Bookings.ListForGuest(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	n := len(views)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: orEmpty(views)})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	view, err := h.Bookings.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: view})
}

func (h *Handlers) listHostBookings(w http.ResponseWriter, r *http.Request) {
	views, err := h.Bookings.ListForHost(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	n := len(views)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: orEmpty(views)})
}

// ---- reviews ----

type reviewReq struct {
	BookingID     string         `json:"bookingId" validate:"required,len=24,hexadecimal"`
	Rating        int            `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string         `json:"comment" validate:"required,max=1000"`
	Images        []domain.Image `json:"images"`
	IsRecommended *bool          `json:"isRecommended"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewReq
	if !h.decode(w, r, &req) {
		return
	}
	rv, err := h.Reviews.Create(r.Context(), actorFrom(r), app.ReviewInput{
		BookingID:     req.BookingID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Images:        req.Images,
		IsRecommended: req.IsRecommended,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: rv})
}

func (h *Handlers) listPropertyReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l < 1 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation))
			return
		}
		limit = l
	}
	rs, err := h.Reviews.ListForProperty(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	n := len(rs)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: orEmpty(rs)})
}

// ---- profile ----

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Me(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: u})
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd domain.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), actorFrom(r), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: u})
}

// ---- uploads ----

func (h *Handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, fmt.Errorf("%w: please upload an image file", domain.ErrValidation))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, fmt.Errorf("%w: please upload an image file", domain.ErrValidation))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: could not read upload", domain.ErrValidation))
		return
	}
	res, err := h.Uploads.Upload(r.Context(), actorFrom(r), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Image uploaded successfully", Data: res})
}

func (h *Handlers) deleteImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PublicID string `json:"public_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return
	}
	if err := h.Uploads.Delete(r.Context(), actorFrom(r), req.PublicID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Image deleted successfully"})
}

// ---- plumbing ----

// decode reads a JSON body into dst and runs struct validation. Writes the
// error response itself; callers bail out on false.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return false
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// orEmpty keeps list payloads as [] instead of null.
func orEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	default:
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}
