package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// User represents a registered store owner. The password is stored as
// submitted and compared in-process; this aggregate is a local credential
// list, not a security boundary.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone"`
	StoreName string `json:"storeName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	CreatedAt string `json:"createdAt"`
}

// Sanitized returns a copy of the user with the password stripped. Session
// users are always sanitized.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// State is the identity aggregate: the registered users plus the current
// session, persisted wholesale as one blob.
type State struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Users           []User `json:"users"`
}

// Result is the structured outcome of an identity command. Failures are data,
// not errors: bad credentials and duplicate registrations come back as
// Success=false with a message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ErrRejected signals that a command was refused and the snapshot must not be
// flushed; the accompanying Result carries the reason.
var ErrRejected = errors.New("command rejected")

// Reducer computes the next identity state from the current one.
type Reducer func(State) (State, error)

// Repository is the serialized access point to the identity aggregate.
type Repository interface {
	Snapshot(ctx context.Context) (State, error)
	Apply(ctx context.Context, reduce Reducer) (State, error)
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	next := s
	next.Users = append([]User(nil), s.Users...)
	if s.User != nil {
		user := *s.User
		next.User = &user
	}
	return next
}

// Login matches email and password against the registered users and, on
// success, installs the sanitized user as the current session.
func (s State) Login(email, password string) (State, Result) {
	for _, user := range s.Users {
		if strings.EqualFold(user.Email, email) && user.Password == password {
			next := s.Clone()
			session := user.Sanitized()
			next.User = &session
			next.IsAuthenticated = true
			return next, Result{Success: true, User: &session}
		}
	}
	return s, Result{Success: false, Message: "Invalid email or password"}
}

// Register appends a new user and logs them in. Duplicate emails are refused.
func (s State) Register(user User, now time.Time) (State, Result) {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return s, Result{Success: false, Message: "Name, email and password are required"}
	}
	for _, existing := range s.Users {
		if strings.EqualFold(existing.Email, user.Email) {
			return s, Result{Success: false, Message: "User already exists with this email"}
		}
	}

	user.CreatedAt = now.UTC().Format(time.RFC3339)

	next := s.Clone()
	next.Users = append(next.Users, user)
	session := user.Sanitized()
	next.User = &session
	next.IsAuthenticated = true
	return next, Result{Success: true, User: &session}
}

// Logout clears the current session.
func (s State) Logout() State {
	next := s.Clone()
	next.User = nil
	next.IsAuthenticated = false
	return next
}

// UpdateProfile replaces the user matching the email and refreshes the
// session user when it is the one being edited. Always succeeds; an unknown
// email is a no-op.
func (s State) UpdateProfile(user User) (State, Result) {
	next := s.Clone()
	for i := range next.Users {
		if strings.EqualFold(next.Users[i].Email, user.Email) {
			if user.Password == "" {
				user.Password = next.Users[i].Password
			}
			if user.ID == "" {
				user.ID = next.Users[i].ID
			}
			if user.CreatedAt == "" {
				user.CreatedAt = next.Users[i].CreatedAt
			}
			next.Users[i] = user
			break
		}
	}
	if next.User != nil && strings.EqualFold(next.User.Email, user.Email) {
		session := user.Sanitized()
		next.User = &session
	}
	result := user.Sanitized()
	return next, Result{Success: true, User: &result}
}
