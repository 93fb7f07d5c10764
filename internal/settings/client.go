// Package settings is the client of the backend settings endpoint.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/settings/schema"
	"github.com/termii-notify/smsadmin/util/conf"
)

// Path is the path of the settings endpoint on the backend.
const Path = "/api/settings"

// ShopHeader carries the shop domain alongside the query parameter.
const ShopHeader = "X-Shopify-Shop-Domain"

type Config struct {
	// URL is the base url of the backend.
	URL string `conf:"url"`
}

var DefaultConfig = conf.DefaultConfig{
	"url": "http://localhost:8000",
}

// Client reads and writes shop settings.
type Client interface {
	Get(ctx context.Context, shop string) (Settings, error)
	Save(ctx context.Context, shop string, draft Draft) error
}

type ClientParams struct {
	fx.In

	Config Config
	Log    *zap.Logger

	Schema *schema.Schema `optional:"true"`

	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client `optional:"true"`
}

type HttpClient struct {
	base   *url.URL
	http   *http.Client
	schema *schema.Schema
	log    *zap.Logger
}

var _ Client = (*HttpClient)(nil)

func NewClient(params ClientParams) (*HttpClient, error) {
	if params.Config.URL == "" {
		return nil, fmt.Errorf("backend url is required")
	}

	base, err := url.Parse(params.Config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", params.Config.URL)
	}

	s := params.Schema
	if s == nil {
		if s, err = schema.New(); err != nil {
			return nil, err
		}
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &HttpClient{
		base:   base,
		http:   httpClient,
		schema: s,
		log:    log,
	}, nil
}

// Get fetches the settings of a shop.
func (c *HttpClient) Get(ctx context.Context, shop string) (Settings, error) {
	var out Settings

	req, err := c.newRequest(ctx, http.MethodGet, shop, nil)
	if err != nil {
		return out, err
	}

	body, err := c.do(req)
	if err != nil {
		return out, err
	}

	if err := c.schema.Validate(schema.SchemaTypeSettings, body); err != nil {
		return out, fmt.Errorf("invalid settings response: %w", err)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode settings response: %w", err)
	}

	return out, nil
}

// Save stores the templates of a shop. The response body is ignored.
func (c *HttpClient) Save(ctx context.Context, shop string, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, shop, payload)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *HttpClient) newRequest(ctx context.Context, method, shop string, payload []byte) (*http.Request, error) {
	endpoint := c.base.JoinPath(Path)
	endpoint.RawQuery = url.Values{"shop": []string{shop}}.Encode()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(ShopHeader, shop)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and returns the body of a 2xx response. Non-2xx responses
// with a json body are returned as *APIError.
func (c *HttpClient) do(req *http.Request) ([]byte, error) {
	log := c.log.With(
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	res, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", req.Method, Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Debug("failed to read body", zap.Error(err))
		return nil, fmt.Errorf("read response: %w", err)
	}

	log = log.With(zap.Int("status", res.StatusCode))

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		log.Debug("request succeeded")
		return body, nil
	}

	var errRes errorResponse
	if err := json.Unmarshal(body, &errRes); err != nil {
		log.Debug("failed to decode error response", zap.Error(err))
		return nil, fmt.Errorf("decode error response (status %d): %w", res.StatusCode, err)
	}

	apiErr := &APIError{StatusCode: res.StatusCode}
	if errRes.Detail != nil {
		apiErr.Detail = strings.TrimSpace(*errRes.Detail)
	}

	log.Debug("request rejected", zap.String("detail", apiErr.Detail))

	return nil, apiErr
}
