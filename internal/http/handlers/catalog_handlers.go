package handlers

import (
	"context"
	"net/http"

	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/nav"
	"github.com/keebstore/storefront/internal/order"
	"github.com/keebstore/storefront/internal/session"
)

// HomeHandler renders the featured section and the filterable catalog.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	renderStorefront(w, r, "/")
}

// ProductsPageHandler renders the catalog with the sort selector.
func ProductsPageHandler(w http.ResponseWriter, r *http.Request) {
	renderStorefront(w, r, "/products")
}

// CustomBuildHandler sends the visitor to the custom build chat.
func CustomBuildHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, customBuildLink, http.StatusSeeOther)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// renderStorefront applies the category and sort query parameters to the
// visitor's state, then draws the page from that state.
func renderStorefront(w http.ResponseWriter, r *http.Request, path string) {
	var data pageData
	err := withSession(r, func(ctx context.Context, s *session.State) error {
		q := r.URL.Query()
		if q.Has("category") {
			s.Filter = q.Get("category")
			if s.Filter == "" {
				s.Filter = catalog.FilterAll
			}
		}
		if q.Has("sort") {
			s.Sort = catalog.ParseSortKey(q.Get("sort"))
		}
		s.Page = path
		data = buildPage(s, nil)
		return nil
	})
	if err != nil {
		serverError(w, r, "failed to load visitor state", err)
		return
	}

	renderPage(w, r, http.StatusOK, data)
}

// buildPage draws the visitor's current page and consumes the pending notice.
func buildPage(s *session.State, errs []order.ValidationError) pageData {
	path := s.ReturnPath()
	data := pageData{
		Title: "Home",
		Path:  path,
		Nav:   nav.Build(path),
	}
	if path == "/products" {
		data.Title = "Products"
		data.ShowSort = true
	} else {
		featured := storeCatalog.FeaturedView()
		data.Featured = &featured
	}

	data.Notice, data.NoticeError = s.TakeNotice()
	data.Catalog = storeCatalog.View(s.Filter, s.Sort)
	data.Modal = newModalData(&s.Overlay, storeCatalog.Formatter(), errs)
	return data
}
