package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/models"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/common"
)

// Config holds the endpoints and credentials of one remote sheet.
type Config struct {
	// Endpoints maps each partition to its URL.
	Endpoints map[models.Partition]string
	// EmployeesEndpoint serves the roster (type=employees). Usually the PA
	// endpoint.
	EmployeesEndpoint string
	SheetID           string
	// BearerToken, when set, is sent as an Authorization header.
	BearerToken string
	Timeout     time.Duration
}

// HTTPClient implements Client over plain HTTP/JSON.
type HTTPClient struct {
	cfg  Config
	http *http.Client
}

func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

// envelope is the wire shape of every response.
type envelope struct {
	Success          bool       `json:"success"`
	Data             [][]string `json:"data,omitempty"`
	Error            string     `json:"error,omitempty"`
	ValidationErrors []string   `json:"validationErrors,omitempty"`
}

// pushBody is the wire shape of a push request.
type pushBody struct {
	SheetID         string     `json:"sheetId"`
	Data            [][]string `json:"data"`
	ValidateRecords bool       `json:"validateRecords,omitempty"`
	Type            string     `json:"type,omitempty"`
}

func (c *HTTPClient) FetchRows(ctx context.Context, partition models.Partition) ([][]string, error) {
	endpoint, ok := c.cfg.Endpoints[partition]
	if !ok {
		return nil, fmt.Errorf("no endpoint configured for partition %s", partition)
	}
	return c.fetch(ctx, endpoint, "")
}

func (c *HTTPClient) FetchEmployeeRows(ctx context.Context) ([][]string, error) {
	return c.fetch(ctx, c.cfg.EmployeesEndpoint, "employees")
}

func (c *HTTPClient) PushRows(ctx context.Context, partition models.Partition, rows [][]string, validate bool) error {
	endpoint, ok := c.cfg.Endpoints[partition]
	if !ok {
		return fmt.Errorf("no endpoint configured for partition %s", partition)
	}
	return c.push(ctx, endpoint, pushBody{
		SheetID:         c.cfg.SheetID,
		Data:            rows,
		ValidateRecords: validate,
	})
}

func (c *HTTPClient) PushEmployeeRows(ctx context.Context, rows [][]string) error {
	return c.push(ctx, c.cfg.EmployeesEndpoint, pushBody{
		SheetID: c.cfg.SheetID,
		Data:    rows,
		Type:    "employees",
	})
}

// Ping probes the PA endpoint. Any HTTP response counts as reachable; only
// a transport failure means offline.
func (c *HTTPClient) Ping(ctx context.Context) error {
	endpoint := c.cfg.EmployeesEndpoint
	if endpoint == "" {
		endpoint = c.cfg.Endpoints[models.PartitionPA]
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) fetch(ctx context.Context, endpoint, typ string) ([][]string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("sheetId", c.cfg.SheetID)
	if typ != "" {
		q.Set("type", typ)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *HTTPClient) push(ctx context.Context, endpoint string, body pushBody) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	_, err = c.do(req)
	return err
}

func (c *HTTPClient) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: %s", common.ErrUnavailable, resp.Status, string(b))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", common.ErrUnavailable, err)
	}
	if !env.Success {
		return nil, &APIError{Message: env.Error, ValidationErrors: env.ValidationErrors}
	}
	return &env, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	}
}
