package session

import (
	"context"
	"errors"

	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/order"
)

var ErrNotFound = errors.New("session: not found")

// State is everything the storefront remembers about one visitor. Page is
// the last page rendered, where form posts redirect back to.
type State struct {
	ID          string          `json:"id"`
	Filter      string          `json:"filter"`
	Sort        catalog.SortKey `json:"sort"`
	Overlay     order.Overlay   `json:"overlay"`
	Notice      string          `json:"notice,omitempty"`
	NoticeError bool            `json:"notice_error,omitempty"`
	Page        string          `json:"page,omitempty"`
}

// NewState returns the initial state: all categories, newest first, overlay closed.
func NewState(id string) *State {
	return &State{
		ID:      id,
		Filter:  catalog.FilterAll,
		Sort:    catalog.SortNewest,
		Overlay: order.Overlay{Phase: order.PhaseClosed},
	}
}

// Flash sets a one-shot notice shown on the next render.
func (s *State) Flash(msg string, isError bool) {
	s.Notice = msg
	s.NoticeError = isError
}

// TakeNotice returns the pending notice and clears it.
func (s *State) TakeNotice() (string, bool) {
	msg, isErr := s.Notice, s.NoticeError
	s.Notice, s.NoticeError = "", false
	return msg, isErr
}

// ReturnPath is where a form post redirects back to.
func (s *State) ReturnPath() string {
	if s.Page == "" {
		return "/"
	}
	return s.Page
}

// Store persists visitor state between requests.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
}

// LoadOrNew loads the state for id, starting a fresh one when none exists.
func LoadOrNew(ctx context.Context, store Store, id string) (*State, error) {
	s, err := store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return NewState(id), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
