// Package services содержит логику бизнес-уровня для административного
// управления пользователями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/lib/authz"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.DummyUpdateUser) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (int, error)
}

// UserService реализует операции администрирования пользователей.
// Все операции доступны только суперпользователю, проверка прав
// выполняется на уровне middleware.
type UserService struct {
	users UserRepository
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

// List возвращает страницу пользователей, упорядоченных по id.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	const op = "services.user.List"

	users, err := s.users.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Get возвращает пользователя по идентификатору.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	const op = "services.user.Get"

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Update частично обновляет пользователя. Непереданные поля не меняются.
// Новый email и username проверяются на уникальность среди остальных
// пользователей. Смена пароля через этот эндпоинт не поддерживается.
func (s *UserService) Update(ctx context.Context, id int64, patch models.DummyUpdateUser) (*models.User, error) {
	const op = "services.user.Update"

	existing, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patch.Email != nil && *patch.Email != existing.Email {
		if other, err := s.users.GetUserByEmail(ctx, *patch.Email); err == nil && other.ID != id {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateEmail)
		} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if patch.Username != nil && *patch.Username != existing.Username {
		if other, err := s.users.GetUserByUsername(ctx, *patch.Username); err == nil && other.ID != id {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateUsername)
		} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.users.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated user", slog.Int64("id", id))
	return updated, nil
}

// Delete удаляет пользователя. Суперпользователь не может удалить
// собственную учетную запись.
func (s *UserService) Delete(ctx context.Context, actingUser *models.User, id int64) error {
	const op = "services.user.Delete"

	if _, err := s.users.GetUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := authz.RequireNotSelf(actingUser, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("deleted user", slog.Int64("id", id))
	return nil
}
