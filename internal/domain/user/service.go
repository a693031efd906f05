package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	usernameMaxLength = 150
	emailMaxLength    = 254
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateUserInput struct {
	Username string
	Email    string
}

func (s *Service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > usernameMaxLength {
		return nil, fmt.Errorf("%w: username is too long", ErrInvalidInput)
	}
	email := strings.TrimSpace(input.Email)
	if utf8.RuneCountInString(email) > emailMaxLength {
		return nil, fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsUsernameTaken(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		user := User{Username: username, Email: email}
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteUser removes the user together with every review they wrote.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetUser(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteReviewsByUser(ctx, id); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, id)
	})
}
