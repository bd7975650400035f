package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeadmin/catman/internal/config"
	"storeadmin/catman/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CategoryClient talks to the categories REST resource.
type CategoryClient interface {
	List(ctx context.Context) (domain.Categories, error)
	// Create returns the created category when the backend echoes it, nil otherwise.
	Create(ctx context.Context, payload domain.Payload) (*domain.Category, error)
	// Update returns the updated category when the backend echoes it, nil otherwise.
	Update(ctx context.Context, payload domain.Payload) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

type categoryClient struct {
	rl         ratelimit.Limiter
	endpoint   string
	httpClient *resty.Client
}

func NewCategoryClient(cfg config.BackendConfig) CategoryClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Duration(cfg.RetryWait)*time.Millisecond).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "catman")

	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &categoryClient{
		rl:         rl,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + cfg.CategoriesPath,
		httpClient: client,
	}
}

func (c *categoryClient) List(ctx context.Context) (domain.Categories, error) {
	var categories domain.Categories
	resp, err := c.request(ctx).
		SetForceResponseContentType("application/json").
		SetResult(&categories).
		Get(c.endpoint)
	if err != nil {
		if resp != nil && resp.IsSuccess() {
			return nil, fmt.Errorf("failed to decode category list: %w", err)
		}
		return nil, transportError(ctx, "list", err)
	}
	if resp.IsError() {
		return nil, &RequestError{Op: "list", StatusCode: resp.StatusCode(), Message: errorMessage(resp.String())}
	}

	log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

func (c *categoryClient) Create(ctx context.Context, payload domain.Payload) (*domain.Category, error) {
	payload.ID = ""

	created, err := c.write(ctx, "create", resty.MethodPost, payload)
	if err != nil {
		return nil, err
	}
	log.Debugf("Created category %q", payload.Name)
	return created, nil
}

func (c *categoryClient) Update(ctx context.Context, payload domain.Payload) (*domain.Category, error) {
	if payload.ID == "" {
		return nil, fmt.Errorf("update requires a category id")
	}

	updated, err := c.write(ctx, "update", resty.MethodPut, payload)
	if err != nil {
		return nil, err
	}
	log.Debugf("Updated category %s", payload.ID)
	return updated, nil
}

func (c *categoryClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete requires a category id")
	}

	resp, err := c.request(ctx).
		SetQueryParam("_id", id).
		Delete(c.endpoint)
	if err != nil {
		return transportError(ctx, "delete", err)
	}
	if resp.IsError() {
		return &RequestError{Op: "delete", StatusCode: resp.StatusCode(), Message: errorMessage(resp.String())}
	}

	log.Debugf("Deleted category %s", id)
	return nil
}

func (c *categoryClient) Close() error {
	return c.httpClient.Close()
}

func (c *categoryClient) request(ctx context.Context) *resty.Request {
	c.rl.Take()

	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", uuid.NewString())
}

func transportError(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s categories: request cancelled: %w", op, ctx.Err())
	}
	return fmt.Errorf("%s categories: %w", op, err)
}

// write sends payload and returns the echoed category, if any. The backend has
// already stored the document once it answers 2xx, so a body that is not a
// category never fails the write.
func (c *categoryClient) write(ctx context.Context, op, method string, payload domain.Payload) (*domain.Category, error) {
	var echo writeResult
	resp, err := c.request(ctx).
		SetBody(payload).
		SetResult(&echo).
		Execute(method, c.endpoint)
	if err != nil {
		if resp == nil || !resp.IsSuccess() {
			return nil, transportError(ctx, op, err)
		}
		log.Debugf("Write response is not a category: %v", err)
		return nil, nil
	}
	if resp.IsError() {
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode(), Message: errorMessage(resp.String())}
	}
	return echo.category, nil
}

// writeResult is the decoded body of a create or update. Backends answer with
// the stored document or with an acknowledgement ("ok", {"acknowledged":true});
// only a document carrying an id yields a category.
type writeResult struct {
	category *domain.Category
}

func (w *writeResult) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	var category domain.Category
	if err := json.Unmarshal(data, &category); err != nil {
		log.Debugf("Write response is not a category: %v", err)
		return nil
	}
	if category.ID != "" {
		w.category = &category
	}
	return nil
}
