package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/identity/domain"
)

// GetSessionQuery represents the query for the current session
type GetSessionQuery struct{}

// Session is the current authentication state
type Session struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *domain.User `json:"user"`
}

// GetSessionHandler handles the get session query
type GetSessionHandler struct {
	repo domain.Repository
}

// NewGetSessionHandler creates a new get session handler
func NewGetSessionHandler(repo domain.Repository) *GetSessionHandler {
	return &GetSessionHandler{repo: repo}
}

// Handle executes the get session query
func (h *GetSessionHandler) Handle(ctx context.Context, _ GetSessionQuery) (*Session, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity state: %w", err)
	}
	return &Session{IsAuthenticated: state.IsAuthenticated, User: state.User}, nil
}
