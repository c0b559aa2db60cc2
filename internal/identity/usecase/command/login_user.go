package command

import (
	"context"
	"errors"

	"github.com/tair/smart-inventory/internal/identity/domain"
)

// LoginUserCommand represents the command to log a user in
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles the login command
type LoginUserHandler struct {
	repo domain.Repository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.Repository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login command. The session user in the returned Result
// has the password stripped.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*domain.Result, error) {
	var result domain.Result
	_, err := h.repo.Apply(ctx, func(state domain.State) (domain.State, error) {
		next, res := state.Login(cmd.Email, cmd.Password)
		result = res
		if !res.Success {
			return state, domain.ErrRejected
		}
		return next, nil
	})
	if err != nil && !errors.Is(err, domain.ErrRejected) {
		return nil, err
	}
	return &result, nil
}
