package domain

import (
	"context"

	"github.com/smallbiznis/dashboard/internal/form"
)

// Messages returned by Authenticate. They never reveal why a login failed.
const (
	MessageInvalidCredentials = "Invalid credentials."
	MessageSomethingWentWrong = "Something went wrong."
)

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
}

type Service interface {
	// Authorize returns the user when email and password match, and nil
	// otherwise. Only storage failures are reported as errors.
	Authorize(ctx context.Context, email, password string) (*User, error)
	// Authenticate validates a login form. It returns the user and an empty
	// message on success, or one of the two uniform failure messages.
	Authenticate(ctx context.Context, fields form.Fields) (*User, string)
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
}
