// Package address resolves Japanese postal codes to addresses via the
// zipcloud API so the booking form can prefill the customer's address.
package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/konanauto/garage-booking/pkg/logging"
)

const defaultBaseURL = "https://zipcloud.ibsnet.co.jp/api/search"

// ErrNotFound is returned when the postal code resolves to no address.
var ErrNotFound = errors.New("address: postal code not found")

var postalCodeRe = regexp.MustCompile(`^\d{7}$`)

// Result is a resolved address, already joined into display form.
type Result struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
	Full       string `json:"full"`
}

// Client talks to the zipcloud lookup endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Config overrides the endpoint and transport, mainly for tests.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     logger,
	}
}

type zipcloudResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Results []struct {
		Zipcode  string `json:"zipcode"`
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		Address3 string `json:"address3"`
	} `json:"results"`
}

// Lookup resolves a 7-digit postal code. Hyphens in the input are
// tolerated ("665-0845" and "6650845" both work).
func (c *Client) Lookup(ctx context.Context, postalCode string) (*Result, error) {
	code := strings.ReplaceAll(postalCode, "-", "")
	if !postalCodeRe.MatchString(code) {
		return nil, fmt.Errorf("address: invalid postal code %q", postalCode)
	}

	reqURL := c.baseURL + "?zipcode=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("address: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("address: lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("address: lookup returned status %d", resp.StatusCode)
	}

	var body zipcloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("address: decode response: %w", err)
	}
	if body.Status != 200 {
		return nil, fmt.Errorf("address: lookup failed: %s", body.Message)
	}
	if len(body.Results) == 0 {
		return nil, ErrNotFound
	}

	r := body.Results[0]
	return &Result{
		PostalCode: r.Zipcode,
		Prefecture: r.Address1,
		City:       r.Address2,
		Town:       r.Address3,
		Full:       r.Address1 + r.Address2 + r.Address3,
	}, nil
}
