package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Сентинелы слоя хранения: наверх поднимаются только они,
// детали драйвера наружу не выходят.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("duplicate record")
	ErrInvalidInput  = errors.New("record rejected by schema")
)

// Схема объявляет уникальность users.email (23505), внешние ключи
// задач на проект и автора (23503) и CHECK на title и priority (23514).
func handleDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrAlreadyExists
		case "23503", "23502", "23514":
			return ErrInvalidInput
		}
	}
	return err
}
