package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func registeredState(t *testing.T) State {
	t.Helper()

	state, result := State{}.Register(User{
		ID:        "u-1",
		Name:      "Tair",
		Email:     "tair@example.com",
		Password:  "secret",
		StoreName: "Corner Store",
	}, testNow)
	require.True(t, result.Success)
	return state
}

func TestRegister(t *testing.T) {
	state := registeredState(t)

	require.Len(t, state.Users, 1)
	assert.Equal(t, "secret", state.Users[0].Password, "stored record keeps the password")
	assert.Equal(t, "2026-03-15T10:00:00Z", state.Users[0].CreatedAt)

	// Registration auto-logs-in with a sanitized session user.
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Empty(t, state.User.Password)
}

func TestRegisterRequiredFields(t *testing.T) {
	_, result := State{}.Register(User{Email: "x@example.com", Password: "p"}, testNow)
	assert.False(t, result.Success)
	assert.Equal(t, "Name, email and password are required", result.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	state := registeredState(t)

	next, result := state.Register(User{
		Name:     "Other",
		Email:    "TAIR@example.com",
		Password: "other",
	}, testNow)
	assert.False(t, result.Success)
	assert.Equal(t, "User already exists with this email", result.Message)
	assert.Len(t, next.Users, 1)
}

func TestLogin(t *testing.T) {
	state := registeredState(t).Logout()
	require.False(t, state.IsAuthenticated)

	next, result := state.Login("Tair@Example.Com", "secret")
	assert.True(t, result.Success)
	assert.True(t, next.IsAuthenticated)
	require.NotNil(t, next.User)
	assert.Empty(t, next.User.Password)
	assert.Empty(t, result.User.Password)
}

func TestLoginBadCredentials(t *testing.T) {
	state := registeredState(t).Logout()

	next, result := state.Login("tair@example.com", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid email or password", result.Message)
	assert.False(t, next.IsAuthenticated)

	_, result = state.Login("nobody@example.com", "secret")
	assert.False(t, result.Success)
}

func TestLogout(t *testing.T) {
	state := registeredState(t)

	next := state.Logout()
	assert.False(t, next.IsAuthenticated)
	assert.Nil(t, next.User)
	assert.Len(t, next.Users, 1, "registered users survive logout")
}

func TestUpdateProfile(t *testing.T) {
	state := registeredState(t)

	next, result := state.UpdateProfile(User{
		Name:      "Tair K",
		Email:     "tair@example.com",
		Phone:     "9876543210",
		StoreName: "Corner Store 2",
	})
	require.True(t, result.Success)

	assert.Equal(t, "Tair K", next.Users[0].Name)
	assert.Equal(t, "secret", next.Users[0].Password, "blank password keeps the old one")
	assert.Equal(t, "u-1", next.Users[0].ID)
	assert.Equal(t, "2026-03-15T10:00:00Z", next.Users[0].CreatedAt)

	require.NotNil(t, next.User)
	assert.Equal(t, "Corner Store 2", next.User.StoreName)
	assert.Empty(t, next.User.Password)
}

func TestUpdateProfileUnknownEmailIsNoop(t *testing.T) {
	state := registeredState(t)

	next, result := state.UpdateProfile(User{Name: "Ghost", Email: "ghost@example.com"})
	assert.True(t, result.Success)
	assert.Len(t, next.Users, 1)
	assert.Equal(t, "Tair", next.Users[0].Name)
}

func TestCloneIsDeep(t *testing.T) {
	state := registeredState(t)

	clone := state.Clone()
	clone.Users[0].Name = "Mutated"
	clone.User.Name = "Mutated"

	assert.Equal(t, "Tair", state.Users[0].Name)
	assert.Equal(t, "Tair", state.User.Name)
}
