package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keebstore/storefront/internal/auth"
	"github.com/keebstore/storefront/internal/catalog"
	handler "github.com/keebstore/storefront/internal/http/handlers"
	mw "github.com/keebstore/storefront/internal/http/middleware"
	"github.com/keebstore/storefront/internal/http/router"
	"github.com/keebstore/storefront/internal/models"
	"github.com/keebstore/storefront/internal/order"
	"github.com/keebstore/storefront/internal/repo"
	"github.com/keebstore/storefront/internal/session"
)

const waBase = "https://wa.me/6281234567890"

var testSecret = []byte("handlers-test-secret")

func intPtr(v int) *int { return &v }

// fixtureProducts: a and b are the switches of the filter/sort scenario,
// k2 is sold out.
func fixtureProducts() []models.Product {
	return []models.Product{
		{ID: "a", Name: "Gateron Yellow", Category: "switches", Price: 30000, CreatedAt: "2025-09-25T08:00:00Z"},
		{ID: "b", Name: "Boba U4T", Category: "switches", Price: 45000, CreatedAt: "2025-09-26T08:00:00Z"},
		{ID: "k1", Name: "GMK Olivia", Category: "keycaps", Price: 1850000, Stock: intPtr(5), Featured: true, CreatedAt: "2025-09-20T08:00:00Z",
			Description: "Cherry profile, **doubleshot** ABS."},
		{ID: "k2", Name: "Tofu60", Category: "keyboards", Price: 1200000, Stock: intPtr(0), Featured: true, CreatedAt: "2025-09-10T08:00:00Z"},
	}
}

type failingProducts struct{}

func (failingProducts) GetAll(ctx context.Context) ([]models.Product, error) {
	return nil, errors.New("connection refused")
}

type storefront struct {
	handler  http.Handler
	orders   *repo.InMemoryOrderRepository
	sessions *session.MemoryStore
}

func newStorefront(t *testing.T, source repo.ProductRepository, channel func(*repo.InMemoryOrderRepository) order.Channel) *storefront {
	t.Helper()
	if source == nil {
		source = repo.NewInMemoryProductRepository(fixtureProducts()...)
	}
	store := catalog.NewStore(source, []string{"keycaps", "keyboards", "switches", "stabilizers"}, zap.NewNop())
	_ = store.Load(context.Background())

	orders := repo.NewInMemoryOrderRepository()
	sessions := session.NewMemoryStore(time.Hour)

	if channel == nil {
		channel = tableChannel
	}
	handler.SetCatalog(catalog.New(store, catalog.DefaultFormatter(), 3))
	handler.SetSessionStore(sessions)
	handler.SetOrderChannel(channel(orders))
	handler.SetCustomBuildLink(order.Link(waBase, "Hello! I would like to request a custom keyboard build."))

	return &storefront{
		handler: router.NewRouter(router.Options{
			Logger:        zap.NewNop(),
			SessionSecret: testSecret,
			SessionTTL:    time.Hour,
		}),
		orders:   orders,
		sessions: sessions,
	}
}

func tableChannel(orders *repo.InMemoryOrderRepository) order.Channel {
	return order.NewTableChannel(orders)
}

func deepLinkChannel(*repo.InMemoryOrderRepository) order.Channel {
	return order.NewDeepLinkChannel(waBase, order.DefaultMaxURLLength, catalog.DefaultFormatter())
}

// visitor is one browser: it keeps the session cookie between requests.
type visitor struct {
	t       *testing.T
	sf      *storefront
	cookies []*http.Cookie
}

func (sf *storefront) visitor(t *testing.T) *visitor {
	return &visitor{t: t, sf: sf}
}

func (v *visitor) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	v.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	v.sf.handler.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		v.cookies = cs
	}
	return w
}

// page fetches path and parses the HTML.
func (v *visitor) page(path string) *goquery.Document {
	v.t.Helper()
	w := v.do(http.MethodGet, path, nil)
	require.Equal(v.t, http.StatusOK, w.Code)
	return parseHTML(v.t, w)
}

// post submits form to path and expects a redirect, returning its target.
func (v *visitor) post(path string, form url.Values) string {
	v.t.Helper()
	w := v.do(http.MethodPost, path, form)
	require.Equal(v.t, http.StatusSeeOther, w.Code, "body: %s", w.Body.String())
	return w.Header().Get("Location")
}

func (v *visitor) sessionID() string {
	v.t.Helper()
	for _, c := range v.cookies {
		if c.Name == mw.SessionCookieName {
			id, err := auth.ParseSessionToken(c.Value, testSecret)
			require.NoError(v.t, err)
			return id
		}
	}
	v.t.Fatal("visitor has no session cookie")
	return ""
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func cardIDs(sel *goquery.Selection) []string {
	ids := []string{}
	sel.Find(".product-card").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-product-id", ""))
	})
	return ids
}

func orderForm(quantity string) url.Values {
	return url.Values{
		"customer_name":    {"Dita"},
		"customer_email":   {"dita@example.com"},
		"customer_phone":   {"0812345"},
		"customer_address": {"Jl. Merdeka 1, Bandung"},
		"quantity":         {quantity},
		"notes":            {"please gift wrap"},
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func memoryRepo(products []models.Product) repo.ProductRepository {
	return repo.NewInMemoryProductRepository(products...)
}
