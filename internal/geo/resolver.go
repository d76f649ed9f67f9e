// Package geo resolves client IPs to coarse country codes. The lookup is a
// best-effort external call: the IP is used for exactly one request and the
// caller discards it afterwards.
package geo

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

type Resolver interface {
	// CountryCode returns an ISO country code for the IP, or an error when
	// the lookup service is unavailable or answers with garbage. Callers
	// must treat any error as "no country", never as a request failure.
	CountryCode(ctx context.Context, ip string) (string, error)
}

// HTTPResolver queries an ipapi.co-compatible service: GET
// <base>/<ip>/country/ answering with a bare country code.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	tr := &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
	}
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

func (r *HTTPResolver) CountryCode(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/%s/country/", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", err
	}

	code := strings.TrimSpace(string(body))
	if code == "" || code == "Undefined" {
		return "", fmt.Errorf("geo lookup returned no country")
	}

	return code, nil
}

// Disabled is the resolver used when geolocation is turned off: every
// lookup degrades to "no country".
type Disabled struct{}

func (Disabled) CountryCode(ctx context.Context, ip string) (string, error) {
	return "", fmt.Errorf("geo lookup disabled")
}
