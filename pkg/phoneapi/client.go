package phoneapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
)

const (
	// DefaultBaseURL is the local API server.
	DefaultBaseURL = "http://localhost:8000/v1"

	// pageSize is the server's maximum limit.
	pageSize = 100
)

// Client reads the public catalog endpoints of a phone price API server.
// It implements catalog.Source so the CLI can run the same pipeline as the
// server against a remote deployment.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

var _ catalog.Source = (*Client)(nil)

// NewClient constructs a new Client with sane defaults. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		debug:      os.Getenv("ENV") == "development",
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// ListPhones returns one skip/limit page of phones.
func (c *Client) ListPhones(ctx context.Context, offset, limit int) ([]models.Phone, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(min(limit, pageSize)))
	var phones []models.Phone
	if err := c.doRequest(ctx, "/phones", q, &phones); err != nil {
		return nil, err
	}
	return phones, nil
}

// ListShops returns every shop, following pages until a short one.
func (c *Client) ListShops(ctx context.Context) ([]models.Shop, error) {
	return fetchAll[models.Shop](ctx, c, "/shops", url.Values{})
}

// ListOffers returns every price, or only those of phoneID when non-nil.
func (c *Client) ListOffers(ctx context.Context, phoneID *int) ([]models.Offer, error) {
	q := url.Values{}
	if phoneID != nil {
		q.Set("phone_id", strconv.Itoa(*phoneID))
	}
	return fetchAll[models.Offer](ctx, c, "/prices", q)
}

// GetPhone returns phone id, or nil when the server has no such phone.
func (c *Client) GetPhone(ctx context.Context, id int) (*models.Phone, error) {
	var phone models.Phone
	err := c.doRequest(ctx, "/phones/"+strconv.Itoa(id), nil, &phone)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

// GetPhones returns the phones that exist among ids.
func (c *Client) GetPhones(ctx context.Context, ids []int) ([]models.Phone, error) {
	out := make([]models.Phone, 0, len(ids))
	for _, id := range ids {
		p, err := c.GetPhone(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func fetchAll[T any](ctx context.Context, c *Client, endpoint string, q url.Values) ([]T, error) {
	var all []T
	for skip := 0; ; skip += pageSize {
		q.Set("skip", strconv.Itoa(skip))
		q.Set("limit", strconv.Itoa(pageSize))
		var page []T
		if err := c.doRequest(ctx, endpoint, q, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// doRequest performs the HTTP GET against the API and decodes the
// envelope's data into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, q url.Values, result any) error {
	target := c.baseURL + endpoint
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	// Debug logging for development
	if c.debug {
		log.Debug().Str("endpoint", target).Msg("[PHONEAPI] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Debug logging for development
	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(respBody)).
			Msg("[PHONEAPI] Incoming response")
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
		}
		return apiErr
	}
	// Empty lists are omitted from the envelope.
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
