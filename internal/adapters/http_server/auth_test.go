package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homelyhub/internal/domain"
)

const testUserID = "64f1b2c3d4e5f60718293b01"

func authedRequest(t *testing.T, v *TokenVerifier, userID string, role domain.Role) *http.Request {
	t.Helper()
	tok, err := v.IssueToken(userID, role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestRequireAuth_RoundTrip(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	var got domain.Actor
	h := v.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = actorFrom(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authedRequest(t, v, testUserID, domain.RoleHost))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got.ID != testUserID || got.Role != domain.RoleHost {
		t.Fatalf("unexpected actor: %+v", got)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	other := NewTokenVerifier("other-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	cases := []struct {
		name string
		req  *http.Request
	}{
		{"no header", httptest.NewRequest(http.MethodGet, "/", nil)},
		{"not bearer", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Basic abc")
			return r
		}()},
		{"wrong secret", authedRequest(t, other, testUserID, domain.RoleGuest)},
		{"garbage user id", authedRequest(t, v, "not-an-object-id", domain.RoleGuest)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			v.RequireAuth(next).ServeHTTP(rr, c.req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
			var body envelope
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body.Success {
				t.Fatal("error envelope must have success=false")
			}
		})
	}
}

func TestRequireAuth_UnknownRoleFallsBackToGuest(t *testing.T) {
	v := NewTokenVerifier("test-secret")

	var got domain.Actor
	h := v.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = actorFrom(r)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authedRequest(t, v, testUserID, domain.Role("superuser")))
	if got.Role != domain.RoleGuest {
		t.Fatalf("role = %q, want guest", got.Role)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad input", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrAuthRequired, http.StatusUnauthorized},
		{fmt.Errorf("%w: not yours", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: property x", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: already reviewed", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: image store", domain.ErrUpstream), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		writeError(rr, c.err)
		if rr.Code != c.status {
			t.Fatalf("%v: status = %d, want %d", c.err, rr.Code, c.status)
		}
	}
}
