package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/identity/domain"
)

// LogoutUserCommand represents the command to clear the current session
type LogoutUserCommand struct{}

// LogoutUserHandler handles the logout command
type LogoutUserHandler struct {
	repo domain.Repository
}

// NewLogoutUserHandler creates a new logout user handler
func NewLogoutUserHandler(repo domain.Repository) *LogoutUserHandler {
	return &LogoutUserHandler{repo: repo}
}

// Handle executes the logout command
func (h *LogoutUserHandler) Handle(ctx context.Context, _ LogoutUserCommand) error {
	_, err := h.repo.Apply(ctx, func(state domain.State) (domain.State, error) {
		return state.Logout(), nil
	})
	return err
}
