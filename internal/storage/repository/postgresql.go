// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и товарами. Предоставляет методы
// создания, чтения, обновления, удаления, фильтрации и агрегирования записей.
//
// Уникальность email, username и sku обеспечивается уникальными индексами:
// нарушение constraint-а транслируется в доменную ошибку Duplicate*.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/product-catalog/internal/apperr"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и товарами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// mapConstraintErr переводит нарушение уникального constraint-а в доменную
// ошибку. Именно здесь разрешается гонка двух конкурентных вставок:
// проигравшая получает Duplicate*, а не второй успех.
func mapConstraintErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return fmt.Errorf("%s: %w", op, apperr.ErrDuplicateEmail)
		case "users_username_key":
			return fmt.Errorf("%s: %w", op, apperr.ErrDuplicateUsername)
		case "products_sku_key":
			return fmt.Errorf("%s: %w", op, apperr.ErrDuplicateSKU)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapNoRows переводит отсутствие строки в доменную ошибку ErrNotFound.
func mapNoRows(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
