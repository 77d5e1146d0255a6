// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и проверки токенов доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	"github.com/magabrotheeeer/product-catalog/internal/lib/authz"
	"github.com/magabrotheeeer/product-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/product-catalog/internal/lib/password"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	hasher   *password.Hasher
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, hasher *password.Hasher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		hasher:   hasher,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Самостоятельная регистрация никогда не выдает права суперпользователя.
// Предварительные проверки дают понятные ошибки, но гарантию уникальности
// обеспечивает constraint в базе: при гонке проигравший тоже получит Duplicate*.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegisterUser) (*models.User, error) {
	const op = "services.auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateEmail)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateUsername)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		FullName:     req.FullName,
		IsActive:     true,
		IsSuperuser:  false,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.Int64("id", created.ID), slog.String("username", created.Username))
	return created, nil
}

// Login проверяет учетные данные и возвращает токен доступа.
//
// Идентификатор может быть именем пользователя или email: сначала
// выполняется поиск по username, при неудаче идентификатор трактуется
// как email и проверка повторяется для найденной учетной записи.
// Деактивированная учетная запись не может войти даже с верным паролем.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user := s.authenticate(ctx, identifier, rawPassword)
	if user == nil {
		if byEmail, err := s.users.GetUserByEmail(ctx, identifier); err == nil {
			user = s.authenticate(ctx, byEmail.Username, rawPassword)
		}
	}
	if user == nil {
		return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}

	if err := authz.RequireActive(user); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// authenticate возвращает пользователя, если username и пароль совпали, иначе nil.
func (s *AuthService) authenticate(ctx context.Context, username, rawPassword string) *models.User {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil
	}
	if !password.Compare(user.PasswordHash, rawPassword) {
		return nil
	}
	return user
}

// ValidateToken проверяет JWT и возвращает пользователя из subject-а токена.
// Используется middleware аутентификации на каждом запросе.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
