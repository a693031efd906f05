package user

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uint) error
	DeleteReviewsByUser(ctx context.Context, id uint) error
}
