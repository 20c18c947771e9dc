package domain

import "context"

type Repository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *User) error
	// FindByEmail matches the email exactly. It returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)
}
