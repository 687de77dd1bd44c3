// Package directory is the HTTP client for the external pharmacy
// directory. The upstream is a plain REST collection endpoint, so phone
// lookup fetches the collection and filters locally on normalized digits.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

const maxResponseSizeBytes = 2 << 20

type Config struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Option customizes the Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ contractx.Directory = (*Client)(nil)

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("directory url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid directory url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// pharmacyPayload matches the upstream schema, which uses camelCase keys.
type pharmacyPayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	State         string `json:"state"`
	RxVolume      int    `json:"rxVolume"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
}

func (p pharmacyPayload) toRecord() statex.PharmacyRecord {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Unknown Pharmacy"
	}
	return statex.PharmacyRecord{
		Name:          name,
		Phone:         strings.TrimSpace(p.Phone),
		City:          strings.TrimSpace(p.City),
		State:         strings.TrimSpace(p.State),
		RxVolume:      p.RxVolume,
		Email:         strings.TrimSpace(p.Email),
		ContactPerson: strings.TrimSpace(p.ContactPerson),
	}
}

// FindByPhone returns the pharmacy whose number matches the caller's, or
// contract.ErrNotFound. Numbers are compared on their trailing ten digits
// so formatting and country prefixes don't matter.
func (c *Client) FindByPhone(ctx context.Context, phone string) (*statex.PharmacyRecord, error) {
	want := normalizePhone(phone)
	if want == "" {
		return nil, fmt.Errorf("%w: phone is empty", contractx.ErrNotFound)
	}

	payloads, err := c.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range payloads {
		if normalizePhone(p.Phone) == want {
			record := p.toRecord()
			return &record, nil
		}
	}
	return nil, contractx.ErrNotFound
}

// Search returns all pharmacies matching the given filters.
func (c *Client) Search(ctx context.Context, filters contractx.SearchFilters) ([]statex.PharmacyRecord, error) {
	payloads, err := c.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var records []statex.PharmacyRecord
	for _, p := range payloads {
		record := p.toRecord()
		if !matches(record, filters) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// HealthCheck reports whether the directory endpoint is reachable.
func (c *Client) HealthCheck(ctx context.Context) bool {
	_, err := c.fetchAll(ctx)
	return err == nil
}

func (c *Client) fetchAll(ctx context.Context) ([]pharmacyPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pharmacies", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", contractx.ErrDirectoryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", contractx.ErrDirectoryUnavailable, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: http status=%d", contractx.ErrDirectoryUnavailable, resp.StatusCode)
	}

	var payloads []pharmacyPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", contractx.ErrDirectoryUnavailable, err)
	}
	return payloads, nil
}

func matches(record statex.PharmacyRecord, filters contractx.SearchFilters) bool {
	if filters.City != "" && !strings.EqualFold(record.City, filters.City) {
		return false
	}
	if filters.State != "" && !strings.EqualFold(record.State, filters.State) {
		return false
	}
	if filters.MinVolume > 0 && record.RxVolume < filters.MinVolume {
		return false
	}
	return true
}

// normalizePhone keeps the trailing ten digits.
func normalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}
