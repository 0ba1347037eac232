package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// WithRequestID stores the id forwarded to the remote API as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// API is the transport shared by every resource client.
type API struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewAPI(baseURL string, timeout time.Duration, logger *logrus.Logger) *API {
	return &API{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// do sends one JSON request. out may be nil when the body is not needed.
func (a *API) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqURL := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		a.log.Errorf("APIClient: Failed to create %s %s request: %v", method, path, err)
		return fmt.Errorf("failed to create api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	a.log.Debugf("APIClient: %s %s", method, reqURL)
	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Errorf("APIClient: Failed to execute %s %s: %v", method, path, err)
		return fmt.Errorf("failed to communicate with api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			a.log.Warnf("APIClient: %s %s not found", method, path)
		} else {
			a.log.Errorf("APIClient: %s %s failed with status %d. Response body: %s", method, path, resp.StatusCode, string(respBody))
		}
		return newAPIError(resp.StatusCode, respBody, fallback)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		a.log.Errorf("APIClient: Failed to decode %s %s response: %v", method, path, err)
		return fmt.Errorf("failed to decode api response: %w", err)
	}
	return nil
}

// Resource is a REST collection such as /categorias.
type Resource[T any] struct {
	api  *API
	path string
}

func NewResource[T any](api *API, path string) *Resource[T] {
	return &Resource[T]{api: api, path: path}
}

func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.api.do(ctx, http.MethodGet, r.path, nil, &items, "failed to list"); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T]) ListPage(ctx context.Context, pr domain.PageRequest) (*domain.Page[T], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pr.Index))
	q.Set("size", strconv.Itoa(pr.Size))

	var page domain.Page[T]
	if err := r.api.do(ctx, http.MethodGet, r.path+"?"+q.Encode(), nil, &page, "failed to list page"); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if !page.Consistent() {
		r.api.log.Warnf("APIClient: inconsistent page from %s: %d items, size %d, index %d of %d",
			r.path, len(page.Items), page.Size, page.Index, page.TotalPages)
	}
	return &page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.api.do(ctx, http.MethodGet, r.itemPath(id), nil, &item, "failed to load"); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	var created T
	if err := r.api.do(ctx, http.MethodPost, r.path, item, &created, "failed to create"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int64, item T) (*T, error) {
	var updated T
	if err := r.api.do(ctx, http.MethodPut, r.itemPath(id), item, &updated, "failed to update"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.api.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, "failed to delete")
}
