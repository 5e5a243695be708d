//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	server "homelyhub/internal/adapters/http_server"
	redisad "homelyhub/internal/adapters/redis"
	"homelyhub/internal/app"
	"homelyhub/internal/domain"
	mongostore "homelyhub/internal/storage/mongo"
)

type apiEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	Pagination json.RawMessage `json:"pagination"`
	Data       json.RawMessage `json:"data"`
}

func startMongo(t *testing.T) *mongostore.Store {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))
	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var e error
		client, e = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if e != nil {
			return e
		}
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	store := mongostore.New(client.Database("homelyhub_e2e"))
	if err := store.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return store
}

// do sends req and decodes the response envelope, asserting the status.
func do(t *testing.T, ts *httptest.Server, method, path, token string, body any, wantStatus int) apiEnvelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if res.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (message: %s)", method, path, res.StatusCode, wantStatus, env.Message)
	}
	return env
}

func TestHTTP_EndToEnd_BookingFlow(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache := redisad.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = cache.Close() })

	verifier := server.NewTokenVerifier("e2e-secret")
	srv := server.New([]string{"*"})
	srv.MountHandlers(&server.Handlers{
		Properties: app.NewPropertyService(store, cache, time.Minute),
		Bookings:   app.NewBookingService(store, store, store),
		Reviews:    app.NewReviewService(store, store, store, cache),
		Uploads:    app.NewUploadService(nil),
		Users:      app.NewUserService(store),
	}, verifier)
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	hostID, err := store.CreateUser(ctx, domain.User{Name: "E2E Host", Email: "host@e2e.dev", Role: domain.RoleHost, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("seed host: %v", err)
	}
	guestID, err := store.CreateUser(ctx, domain.User{Name: "E2E Guest", Email: "guest@e2e.dev", Role: domain.RoleGuest, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	hostTok, _ := verifier.IssueToken(hostID, domain.RoleHost)
	guestTok, _ := verifier.IssueToken(guestID, domain.RoleGuest)

	// host lists a property
	env := do(t, ts, http.MethodPost, "/api/properties", hostTok, map[string]any{
		"title":       "E2E villa",
		"description": "Villa created through the API.",
		"location": map[string]any{
			"address": map[string]any{"city": "Goa", "state": "Goa", "pincode": "403516"},
		},
		"price":     2000,
		"type":      "villa",
		"bedrooms":  3,
		"bathrooms": 2,
		"maxGuests": 6,
		"amenities": []string{"wifi", "pool"},
	}, http.StatusCreated)
	var created domain.Property
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode property: %v", err)
	}
	if created.Host != hostID || !created.IsActive || created.CheckInTime != "14:00" {
		t.Fatalf("unexpected property: %+v", created)
	}

	// anonymous create is rejected
	do(t, ts, http.MethodPost, "/api/properties", "", map[string]any{"title": "x"}, http.StatusUnauthorized)

	// public search finds it through a filter
	env = do(t, ts, http.MethodGet, "/api/properties?price[lte]=3000&type[in]=villa,cottage", "", nil, http.StatusOK)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("search count: %+v", env.Count)
	}

	// guest books three nights
	env = do(t, ts, http.MethodPost, "/api/bookings", guestTok, map[string]any{
		"propertyId":   created.ID,
		"checkInDate":  "2024-03-01",
		"checkOutDate": "2024-03-04",
		"guests":       map[string]int{"adults": 2, "children": 1},
	}, http.StatusCreated)
	var booking domain.BookingView
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.TotalNights != 3 || booking.TotalAmount != 6000 {
		t.Fatalf("quote wrong: %d nights / %v", booking.TotalNights, booking.TotalAmount)
	}

	// the host cannot read the guest's booking by id
	do(t, ts, http.MethodGet, "/api/bookings/"+booking.ID, hostTok, nil, http.StatusForbidden)
	// but sees it in the host listing
	env = do(t, ts, http.MethodGet, "/api/bookings/host/my-bookings", hostTok, nil, http.StatusOK)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("host bookings count: %+v", env.Count)
	}

	// one review per booking
	review := map[string]any{"bookingId": booking.ID, "rating": 5, "comment": "Great stay."}
	do(t, ts, http.MethodPost, "/api/reviews", guestTok, review, http.StatusCreated)
	do(t, ts, http.MethodPost, "/api/reviews", guestTok, review, http.StatusConflict)

	// the rating aggregate is visible on the property
	env = do(t, ts, http.MethodGet, "/api/properties/"+created.ID, "", nil, http.StatusOK)
	var after domain.Property
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("decode property: %v", err)
	}
	if after.Rating.Count != 1 || after.Rating.Average != 5 {
		t.Fatalf("rating not folded in: %+v", after.Rating)
	}

	// only the owner can unlist
	do(t, ts, http.MethodDelete, "/api/properties/"+created.ID, guestTok, nil, http.StatusForbidden)
	do(t, ts, http.MethodDelete, "/api/properties/"+created.ID, hostTok, nil, http.StatusOK)
	do(t, ts, http.MethodGet, "/api/properties/"+created.ID, "", nil, http.StatusNotFound)
}
