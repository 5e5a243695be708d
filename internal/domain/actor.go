package domain

// Actor is the resolved identity behind a request. Services take it as an
// explicit argument; there is no ambient request-scoped identity.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) Authenticated() bool { return a.ID != "" }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanModify grants write access to the resource owner and to admins.
func (a Actor) CanModify(ownerID string) bool {
	return a.Authenticated() && (a.ID == ownerID || a.IsAdmin())
}

// CanViewBooking mirrors the single-booking read path: only the guest who
// made the booking or an admin. Hosts read bookings for their properties
// through the host listing, which is authorized by property ownership.
func (a Actor) CanViewBooking(b Booking) bool {
	return a.CanModify(b.User)
}
