package cloudinary

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"homelyhub/internal/domain"
)

// Client talks to the image storage service. Uploads are rate limited
// client-side and retried on 429/transient 5xx, honoring Retry-After.
type Client struct {
	base  string
	cloud string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
}

var (
	ErrNotFound     = errors.New("cloudinary: not found")
	ErrUnauthorized = errors.New("cloudinary: unauthorized")
	ErrForbidden    = errors.New("cloudinary: forbidden")
)

func New(base, cloud, key string, rps int) (*Client, error) {
	if cloud == "" {
		return nil, fmt.Errorf("cloud name is required")
	}
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		cloud: cloud,
		hc:    &http.Client{Timeout: 30 * time.Second},
		key:   key,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Upload pushes image bytes and returns the hosted asset reference.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (domain.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.Image{}, err
	}
	if _, err := fw.Write(data); err != nil {
		return domain.Image{}, err
	}
	if err := mw.WriteField("folder", "homelyhub"); err != nil {
		return domain.Image{}, err
	}
	if err := mw.Close(); err != nil {
		return domain.Image{}, err
	}

	var out struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	}
	u := fmt.Sprintf("%s/%s/image/upload", c.base, c.cloud)
	if err := c.post(ctx, u, mw.FormDataContentType(), buf.Bytes(), &out); err != nil {
		return domain.Image{}, err
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return domain.Image{}, fmt.Errorf("cloudinary: incomplete upload response")
	}
	return domain.Image{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Delete destroys a hosted asset by its public id.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	form := url.Values{"public_id": {publicID}}
	u := fmt.Sprintf("%s/%s/image/destroy", c.base, c.cloud)
	var out struct {
		Result string `json:"result"`
	}
	err := c.post(ctx, u, "application/x-www-form-urlencoded", []byte(form.Encode()), &out)
	if errors.Is(err, ErrNotFound) {
		// already gone upstream is fine
		return nil
	}
	return err
}

// post performs a POST with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx.
func (c *Client) post(ctx context.Context, url, contentType string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// fresh request each attempt; the body reader is consumed per try
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("User-Agent", "homelyhub/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if
// absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
