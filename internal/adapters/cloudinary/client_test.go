package cloudinary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"homelyhub/internal/adapters/cloudinary"
)

func TestClient_Upload_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("bad multipart body: %v", err)
			}
			if got := r.FormValue("folder"); got != "homelyhub" {
				t.Errorf("folder = %q", got)
			}
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"public_id":  "homelyhub/abc",
				"secure_url": "https://res.example/abc.png",
			})
		}
	}))
	defer ts.Close()

	cl, err := cloudinary.New(ts.URL, "demo", "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	img, err := cl.Upload(ctx, []byte("png-bytes"), "room.png")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if img.PublicID != "homelyhub/abc" || img.URL != "https://res.example/abc.png" {
		t.Fatalf("unexpected image: %+v", img)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Upload_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl, err := cloudinary.New(ts.URL, "demo", "bad-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := cl.Upload(ctx, []byte("x"), "room.png"); err != cloudinary.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Delete_ToleratesMissing(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := cloudinary.New(ts.URL, "demo", "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// already gone upstream is not an error
	if err := cl.Delete(ctx, "homelyhub/gone"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNew_RequiresCloudAndKey(t *testing.T) {
	if _, err := cloudinary.New("https://api.example", "", "key", 1); err == nil {
		t.Fatal("expected error for empty cloud name")
	}
	if _, err := cloudinary.New("https://api.example", "demo", "", 1); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
