package descriptor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ralt/coprctl/internal/models"
	"github.com/ralt/coprctl/internal/utils"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 60 * time.Second

// Fetcher retrieves the descriptor published at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Descriptor, error)
}

// Client fetches descriptors over HTTP. It asks for gzip encoded bodies and
// decodes them itself.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new descriptor client. A nil httpClient gets a
// client with a one minute timeout.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Fetch downloads and parses the descriptor at url. There are no retries.
func (c *Client) Fetch(ctx context.Context, url string) (*Descriptor, error) {
	logrus.Debugf("Fetching project descriptor: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.CoprError{
			Type: models.ErrDescriptorFetch,
			Err:  fmt.Errorf("failed to build request for %s: %w", url, err),
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.CoprError{
			Type: models.ErrDescriptorFetch,
			Err:  fmt.Errorf("failed to fetch %s: %w", url, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.CoprError{
			Type: models.ErrDescriptorFetch,
			Err:  fmt.Errorf("GET %s returned %s", url, resp.Status),
		}
	}

	body, err := utils.ReadEncoded(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, &models.CoprError{
			Type: models.ErrDescriptorFetch,
			Err:  fmt.Errorf("failed to read response from %s: %w", url, err),
		}
	}

	d, err := Parse(body)
	if err != nil {
		return nil, &models.CoprError{
			Type: models.ErrDescriptorParse,
			Err:  fmt.Errorf("invalid descriptor at %s: %w", url, err),
		}
	}

	logrus.Debugf("Descriptor lists %d chroots and %d dependencies", len(d.AvailableChroots()), len(d.Dependencies))
	return d, nil
}
