package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tair/smart-inventory/internal/identity/domain"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	StoreName string
	Address   string
	City      string
	State     string
	Pincode   string
}

// RegisterUserHandler handles the register user command
type RegisterUserHandler struct {
	repo domain.Repository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.Repository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command. A successful registration logs
// the user in; duplicate emails come back as a refused Result, not an error.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.Result, error) {
	user := domain.User{
		ID:        uuid.NewString(),
		Name:      cmd.Name,
		Email:     cmd.Email,
		Password:  cmd.Password,
		Phone:     cmd.Phone,
		StoreName: cmd.StoreName,
		Address:   cmd.Address,
		City:      cmd.City,
		State:     cmd.State,
		Pincode:   cmd.Pincode,
	}

	var result domain.Result
	_, err := h.repo.Apply(ctx, func(state domain.State) (domain.State, error) {
		next, res := state.Register(user, time.Now())
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
