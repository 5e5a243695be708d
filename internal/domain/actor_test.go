package domain_test

import (
	"testing"

	"homelyhub/internal/domain"
)

const (
	ownerID    = "64f1b2c3d4e5f60718293a4b"
	strangerID = "64f1b2c3d4e5f60718293a4c"
)

func TestActor_CanModify(t *testing.T) {
	cases := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"owner", domain.Actor{ID: ownerID, Role: domain.RoleHost}, true},
		{"admin", domain.Actor{ID: strangerID, Role: domain.RoleAdmin}, true},
		{"stranger", domain.Actor{ID: strangerID, Role: domain.RoleGuest}, false},
		{"anonymous", domain.Actor{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.actor.CanModify(ownerID); got != c.want {
				t.Fatalf("CanModify = %v, want %v", got, c.want)
			}
		})
	}
}

func TestActor_CanViewBooking(t *testing.T) {
	b := domain.Booking{User: ownerID}

	if !(domain.Actor{ID: ownerID, Role: domain.RoleGuest}).CanViewBooking(b) {
		t.Fatal("booking owner should see their booking")
	}
	if !(domain.Actor{ID: strangerID, Role: domain.RoleAdmin}).CanViewBooking(b) {
		t.Fatal("admin should see any booking")
	}
	// the property's host does not read through this path
	if (domain.Actor{ID: strangerID, Role: domain.RoleHost}).CanViewBooking(b) {
		t.Fatal("non-owner host should not see the booking")
	}
}

func TestValidID(t *testing.T) {
	if !domain.ValidID("64f1b2c3d4e5f60718293a4b") {
		t.Fatal("24-hex id should be valid")
	}
	for _, bad := range []string{"", "abc", "64f1b2c3d4e5f60718293a4", "64f1b2c3d4e5f60718293a4bz", "zzf1b2c3d4e5f60718293a4b"} {
		if domain.ValidID(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
