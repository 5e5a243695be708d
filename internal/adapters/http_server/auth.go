package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"homelyhub/internal/domain"
)

// The core never issues or refreshes credentials; this adapter only turns a
// bearer token into a resolved Actor, which handlers pass explicitly into
// the services.

type claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenVerifier struct{ secret []byte }

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) verify(tokenString string) (domain.Actor, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, domain.ErrAuthRequired
	}
	if !domain.ValidID(c.UserID) {
		return domain.Actor{}, domain.ErrAuthRequired
	}
	role := domain.Role(c.Role)
	if !role.Valid() {
		role = domain.RoleGuest
	}
	return domain.Actor{ID: c.UserID, Role: role}, nil
}

type actorKeyType struct{}

var actorKey actorKeyType

// RequireAuth rejects requests without a valid bearer token before any
// handler runs.
func (v *TokenVerifier) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" {
			writeError(w, domain.ErrAuthRequired)
			return
		}
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, fmt.Errorf("%w: malformed authorization header", domain.ErrAuthRequired))
			return
		}
		actor, err := v.verify(strings.TrimSpace(parts[1]))
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// actorFrom pulls the actor RequireAuth resolved. Zero Actor on public
// routes.
func actorFrom(r *http.Request) domain.Actor {
	a, _ := r.Context().Value(actorKey).(domain.Actor)
	return a
}

// IssueToken signs a token for the given identity. Exists for the seeder and
// tests; the API itself has no login path.
func (v *TokenVerifier) IssueToken(userID string, role domain.Role) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{UserID: userID, Role: string(role)})
	return t.SignedString(v.secret)
}
