// Package github is the fasthttp client for the two upstream data
// sources: the user/repos REST endpoints (primary, must succeed) and
// the search endpoints (secondary, rate-limited and best-effort).
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github-card/internal/config"
	"github-card/internal/domain"

	"github.com/valyala/fasthttp"
)

const (
	baseURL   = "https://api.github.com"
	userAgent = "github-card/1.0"
)

var (
	// ErrRateLimited signals the search API refused the call because the
	// quota is exhausted. The aggregator degrades the counter to zero.
	ErrRateLimited = errors.New("github search rate limit exceeded")

	// ErrForbidden signals a 403 that is not quota-related.
	ErrForbidden = errors.New("github access forbidden")
)

type Client struct {
	token       string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// unix timestamp of the next quota reset
	Reset int64 `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		token: cfg.GitHubToken,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:     60,
			Remaining: 60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-RateLimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-RateLimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-RateLimit-Reset")); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

type User struct {
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct {
	Name            string    `json:"name"`
	StargazersCount int       `json:"stargazers_count"`
	Language        string    `json:"language"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SearchKind string

const (
	KindCommits       SearchKind = "commits"
	KindPRs           SearchKind = "prs"
	KindIssues        SearchKind = "issues"
	KindContributions SearchKind = "contributions"
)

// GetUser fetches the primary identity record for username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	u := fmt.Sprintf("%s/users/%s", baseURL, url.PathEscape(username))
	return doRequest[User](ctx, c, u)
}

// GetRepos fetches one page of the user's most-recently-updated
// repositories. Star totals and top languages are derived from it.
func (c *Client) GetRepos(ctx context.Context, username string, perPage int) ([]Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=updated", baseURL, url.PathEscape(username), perPage)
	repos, err := doRequest[[]Repo](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *repos, nil
}

type searchResult struct {
	TotalCount int `json:"total_count"`
}

// SearchCount returns the total_count of a search query for one
// best-effort counter kind.
func (c *Client) SearchCount(ctx context.Context, username string, kind SearchKind) (int, error) {
	q := url.QueryEscape("author:" + username)
	var u string
	switch kind {
	case KindCommits:
		u = fmt.Sprintf("%s/search/commits?q=%s&per_page=1", baseURL, q)
	case KindPRs:
		u = fmt.Sprintf("%s/search/issues?q=%s+type:pr&per_page=1", baseURL, q)
	case KindIssues:
		u = fmt.Sprintf("%s/search/issues?q=%s+type:issue&per_page=1", baseURL, q)
	case KindContributions:
		u = fmt.Sprintf("%s/search/issues?q=%s+type:pr+is:merged&per_page=1", baseURL, q)
	default:
		return 0, fmt.Errorf("unknown search kind %q", kind)
	}

	result, err := doRequest[searchResult](ctx, c, u)
	if err != nil {
		return 0, err
	}
	return result.TotalCount, nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
	}

	client.updateRateLimit(resp)

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func classifyStatus(resp *fasthttp.Response) error {
	code := resp.StatusCode()
	switch {
	case code == fasthttp.StatusOK:
		return nil
	case code == fasthttp.StatusNotFound:
		return domain.ErrUserNotFound
	case code == fasthttp.StatusForbidden || code == fasthttp.StatusTooManyRequests:
		if string(resp.Header.Peek("X-RateLimit-Remaining")) == "0" {
			return ErrRateLimited
		}
		if code == fasthttp.StatusTooManyRequests {
			return ErrRateLimited
		}
		return ErrForbidden
	default:
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, code)
	}
}
