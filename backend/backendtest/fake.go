// Package backendtest provides a function-field fake of backend.Client.
package backendtest

import (
	"context"

	"dpiportal/backend"
	"dpiportal/models"
)

// Fake implements backend.Client. Nil funcs return zero values.
type Fake struct {
	SignInFn         func(ctx context.Context, email, password string) (*backend.SignInResult, error)
	GetProfileFn     func(ctx context.Context, token string) (*models.UserProfile, error)
	ListUsersFn      func(ctx context.Context, token string) ([]models.AdminUser, error)
	CreateUserFn     func(ctx context.Context, token string, in models.AdminUserInput) (*models.AdminUser, error)
	UpdateUserFn     func(ctx context.Context, token string, id int, in models.AdminUserInput) (*models.AdminUser, error)
	DeleteUserFn     func(ctx context.Context, token string, id int) error
	ActivateUserFn   func(ctx context.Context, token string, id int) error
	DeactivateUserFn func(ctx context.Context, token string, id int) error
	ResetPasswordFn  func(ctx context.Context, token string, id int, password string) error
}

var _ backend.Client = (*Fake)(nil)

func (f *Fake) SignIn(ctx context.Context, email, password string) (*backend.SignInResult, error) {
	if f.SignInFn == nil {
		return &backend.SignInResult{Token: "token"}, nil
	}
	return f.SignInFn(ctx, email, password)
}

func (f *Fake) GetProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	if f.GetProfileFn == nil {
		return &models.UserProfile{}, nil
	}
	return f.GetProfileFn(ctx, token)
}

func (f *Fake) ListUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	if f.ListUsersFn == nil {
		return nil, nil
	}
	return f.ListUsersFn(ctx, token)
}

func (f *Fake) CreateUser(ctx context.Context, token string, in models.AdminUserInput) (*models.AdminUser, error) {
	if f.CreateUserFn == nil {
		return &models.AdminUser{Email: in.Email}, nil
	}
	return f.CreateUserFn(ctx, token, in)
}

func (f *Fake) UpdateUser(ctx context.Context, token string, id int, in models.AdminUserInput) (*models.AdminUser, error) {
	if f.UpdateUserFn == nil {
		return &models.AdminUser{ID: id}, nil
	}
	return f.UpdateUserFn(ctx, token, id, in)
}

func (f *Fake) DeleteUser(ctx context.Context, token string, id int) error {
	if f.DeleteUserFn == nil {
		return nil
	}
	return f.DeleteUserFn(ctx, token, id)
}

func (f *Fake) ActivateUser(ctx context.Context, token string, id int) error {
	if f.ActivateUserFn == nil {
		return nil
	}
	return f.ActivateUserFn(ctx, token, id)
}

func (f *Fake) DeactivateUser(ctx context.Context, token string, id int) error {
	if f.DeactivateUserFn == nil {
		return nil
	}
	return f.DeactivateUserFn(ctx, token, id)
}

func (f *Fake) ResetPassword(ctx context.Context, token string, id int, password string) error {
	if f.ResetPasswordFn == nil {
		return nil
	}
	return f.ResetPasswordFn(ctx, token, id, password)
}
