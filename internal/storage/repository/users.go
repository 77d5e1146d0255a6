package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// userColumns список колонок пользователя в порядке сканирования
const userColumns = `id, email, username, password_hash, full_name, is_active, is_superuser, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var fullName sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&fullName, &u.IsActive, &u.IsSuperuser, &u.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает созданную запись.
// Конкурентная вставка с занятым email/username возвращает Duplicate*.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, username, password_hash, full_name, is_active, is_superuser)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.FullName, user.IsActive, user.IsSuperuser)
	created, err := scanUser(row)
	if err != nil {
		return nil, mapConstraintErr(op, err)
	}
	return created, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, mapNoRows(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapNoRows(op, err)
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией: skip записей
// пропускается, возвращается не более limit записей.
func (s *Storage) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY id
			  LIMIT $2 OFFSET $1`
	rows, err := s.DB.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser применяет частичное обновление: изменяются только поля,
// присутствующие в patch. Возвращает обновлённую запись.
func (s *Storage) UpdateUser(ctx context.Context, id int64, patch models.DummyUpdateUser) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	addSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Username != nil {
		addSet("username", *patch.Username)
	}
	if patch.FullName != nil {
		addSet("full_name", *patch.FullName)
	}
	if patch.IsActive != nil {
		addSet("is_active", *patch.IsActive)
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}
	set = append(set, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), len(args))
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapNoRows(op, err)
		}
		return nil, mapConstraintErr(op, err)
	}
	return u, nil
}

// DeleteUser удаляет пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
