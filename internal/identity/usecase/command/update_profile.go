package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/identity/domain"
)

// UpdateProfileCommand represents the command to update a user's profile,
// keyed by email.
type UpdateProfileCommand struct {
	Name      string
	Email     string
	Phone     string
	StoreName string
	Address   string
	City      string
	State     string
	Pincode   string
}

// UpdateProfileHandler handles the update profile command
type UpdateProfileHandler struct {
	repo domain.Repository
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(repo domain.Repository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the update profile command. The stored password, id and
// creation date are carried over; the session user is refreshed when it is
// the one being edited.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.Result, error) {
	var result domain.Result
	_, err := h.repo.Apply(ctx, func(state domain.State) (domain.State, error) {
		next, res := state.UpdateProfile(domain.User{
			Name:      cmd.Name,
			Email:     cmd.Email,
			Phone:     cmd.Phone,
			StoreName: cmd.StoreName,
			Address:   cmd.Address,
			City:      cmd.City,
			State:     cmd.State,
			Pincode:   cmd.Pincode,
		})
		result = res
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
