package github

import (
	"errors"
	"testing"

	"github-card/internal/config"
	"github-card/internal/domain"

	"github.com/valyala/fasthttp"
)

func testConfig() *config.Config {
	return &config.Config{GitHubToken: "test-token"}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		remaining string
		want      error
	}{
		{"ok", fasthttp.StatusOK, "", nil},
		{"not found", fasthttp.StatusNotFound, "", domain.ErrUserNotFound},
		{"rate limited 403", fasthttp.StatusForbidden, "0", ErrRateLimited},
		{"forbidden", fasthttp.StatusForbidden, "30", ErrForbidden},
		{"too many requests", fasthttp.StatusTooManyRequests, "", ErrRateLimited},
		{"server error", fasthttp.StatusBadGateway, "", domain.ErrUpstreamUnavailable},
		{"internal error", fasthttp.StatusInternalServerError, "", domain.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := fasthttp.AcquireResponse()
			defer fasthttp.ReleaseResponse(resp)

			resp.SetStatusCode(tt.status)
			if tt.remaining != "" {
				resp.Header.Set("X-RateLimit-Remaining", tt.remaining)
			}

			err := classifyStatus(resp)
			if tt.want == nil {
				if err != nil {
					t.Errorf("classifyStatus = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("classifyStatus = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateRateLimit(t *testing.T) {
	c := NewClient(testConfig())

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	resp.Header.Set("X-RateLimit-Limit", "5000")
	resp.Header.Set("X-RateLimit-Remaining", "4999")
	resp.Header.Set("X-RateLimit-Reset", "1767225600")

	c.updateRateLimit(resp)

	info := c.GetRateLimitInfo()
	if info.Limit != 5000 || info.Remaining != 4999 || info.Reset != 1767225600 {
		t.Errorf("rate limit info = %+v", info)
	}
}
