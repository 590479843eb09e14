package handlers

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"go.uber.org/zap"

	mw "github.com/keebstore/storefront/internal/http/middleware"
	"github.com/keebstore/storefront/internal/observability"
	"github.com/keebstore/storefront/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.New("_root").ParseFS(templateFS, "templates/*.tmpl"))

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if err := writeJSON(w, status, ErrorResponse{Error: msg}); err != nil {
		observability.FromContext(r.Context()).Error("failed to write JSON response", zap.Error(err))
	}
}

// renderPage executes the base layout into a buffer so a template error never
// leaves a half-written page behind.
func renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "base", data); err != nil {
		observability.FromContext(r.Context()).Error("template exec error", zap.Error(err))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// withSession runs fn on the visitor's state while holding the session lock
// and saves the state afterwards unless fn returns an error.
func withSession(r *http.Request, fn func(ctx context.Context, s *session.State) error) error {
	id := mw.GetSessionID(r)
	if id == "" {
		return errors.New("request has no session")
	}
	unlock := sessionLocks.Lock(id)
	defer unlock()

	ctx := r.Context()
	s, err := session.LoadOrNew(ctx, sessionStore, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := fn(ctx, s); err != nil {
		return err
	}
	if err := sessionStore.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
