package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keebstore/storefront/internal/models"
)

const (
	defaultRestTimeout = 8 * time.Second
	restPathPrefix     = "/rest/v1/"
)

// TableError is returned when the remote table answers with a non-2xx status.
type TableError struct {
	Table  string
	Status int
	Body   string
}

func (e *TableError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("table %s: status %d", e.Table, e.Status)
	}
	return fmt.Sprintf("table %s: status %d: %s", e.Table, e.Status, e.Body)
}

// RestTable is a thin client for a hosted PostgREST-style table API. The
// access key is sent both as apikey and as a bearer token.
type RestTable struct {
	baseURL string
	key     string
	http    *http.Client
}

// NewRestTable constructs a client. A non-positive timeout uses the default.
func NewRestTable(baseURL, key string, timeout time.Duration) *RestTable {
	if timeout <= 0 {
		timeout = defaultRestTimeout
	}
	return &RestTable{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		key:     strings.TrimSpace(key),
		http:    &http.Client{Timeout: timeout},
	}
}

func (t *RestTable) do(ctx context.Context, method, table string, query url.Values, body any, out any) error {
	if t == nil || t.baseURL == "" {
		return errors.New("rest table: missing base url")
	}
	endpoint := t.baseURL + restPathPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest table %s: encode body: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", t.key)
	req.Header.Set("Authorization", "Bearer "+t.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("rest table %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &TableError{Table: table, Status: resp.StatusCode, Body: drainError(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest table %s: decode response: %w", table, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(b))
}

// RestProductRepository reads the products table over REST.
type RestProductRepository struct {
	table *RestTable
}

func NewRestProductRepository(table *RestTable) *RestProductRepository {
	return &RestProductRepository{table: table}
}

func (r *RestProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	var products []models.Product
	if err := r.table.do(ctx, http.MethodGet, "products", q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// RestOrderRepository inserts into the orders table over REST.
type RestOrderRepository struct {
	table *RestTable
}

func NewRestOrderRepository(table *RestTable) *RestOrderRepository {
	return &RestOrderRepository{table: table}
}

// Create inserts one order. The returned representation is discarded.
func (r *RestOrderRepository) Create(ctx context.Context, o models.Order) error {
	return r.table.do(ctx, http.MethodPost, "orders", nil, []models.Order{o}, nil)
}
