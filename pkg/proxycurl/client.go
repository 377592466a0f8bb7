package proxycurl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nubela.co/proxycurl"

// Typed lookup failures. Callers map these to human-readable reasons; any
// other error from GetProfile is a transient "try again later" condition.
var (
	ErrNotFound    = eris.New("proxycurl: profile not found")
	ErrInvalidURL  = eris.New("proxycurl: invalid profile URL")
	ErrUnavailable = eris.New("proxycurl: profile data unavailable")
)

// Client fetches structured profile data from the Proxycurl API.
type Client interface {
	GetProfile(ctx context.Context, profileURL string) (*Profile, error)
}

// Profile is the subset of the person-profile response folded into memos.
type Profile struct {
	FullName    string       `json:"full_name"`
	Occupation  string       `json:"occupation"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []string     `json:"skills"`
}

// Experience is one position held.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// Education is one school attended.
type Education struct {
	DegreeName string `json:"degree_name"`
	School     string `json:"school"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the client-side request rate in requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *httpClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Proxycurl API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) GetProfile(ctx context.Context, profileURL string) (*Profile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "proxycurl: rate limiter")
	}

	endpoint := c.baseURL + "/api/v2/linkedin"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "proxycurl: create request")
	}

	q := url.Values{}
	q.Set("url", profileURL)
	q.Set("use_cache", "if-present")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(ErrUnavailable, "read response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidURL
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Wrapf(ErrUnavailable, "status %d: %s", resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, eris.Wrap(ErrUnavailable, "unmarshal response")
	}

	return &profile, nil
}

var profilePrefixRe = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/(in/)?`)

// NormalizeProfileURL canonicalizes a profile identifier. Bare usernames and
// scheme-less linkedin.com paths become https://www.linkedin.com/in/<slug>;
// anything already carrying an http(s) scheme passes through unchanged.
func NormalizeProfileURL(input string) string {
	if input == "" {
		return ""
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}
	return "https://www.linkedin.com/in/" + profilePrefixRe.ReplaceAllString(input, "")
}
