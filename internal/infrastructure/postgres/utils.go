package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
)

// Querier lo que necesitan los repositorios: lo cumplen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE usados.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeQueryCanceled       = "57014"
	codeLockNotAvailable    = "55P03"
)

// Índices cuya violación tiene un significado de dominio propio.
const constraintOneOpenShift = "shifts_one_open_per_account"

// conflictFields campo de la API protegido por cada índice único.
var conflictFields = map[string]string{
	"tenants_slug_key":                 "slug",
	"accounts_email_key_live":          "email",
	"accounts_operator_email_key_live": "email",
	"categories_name_key_live":         "name",
	"products_name_key_live":           "name",
	"products_sku_key_live":            "sku",
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return false
}

// isInvalidID ids que no son uuid válidos: se tratan como inexistentes.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidText
}

// translate convierte errores de PostgreSQL en errores de dominio.
// Lo que no reconoce lo envuelve con la operación.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if pgErr.ConstraintName == constraintOneOpenShift {
				return domain.ErrShiftAlreadyOpen
			}
			return &domain.ConflictError{Field: conflictFields[pgErr.ConstraintName], Err: domain.ErrConflict}
		case codeForeignKeyViolation, codeInvalidText:
			return domain.ErrNotFound
		case codeQueryCanceled, codeLockNotAvailable:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
		}
	}
	if isTimeout(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// likePattern patrón de búsqueda "contiene" con los comodines de LIKE escapados.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
