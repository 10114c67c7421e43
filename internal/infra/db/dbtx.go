package db

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and *pgx.Conn.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeInvalidText         = "22P02"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, pgErrCodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgErrCodeForeignKeyViolation)
}

func IsInvalidText(err error) bool {
	return hasCode(err, pgErrCodeInvalidText)
}

var uniqueKeyDetail = regexp.MustCompile(`^Key \((.+)\)=\((.+)\) already exists\.?$`)

// UniqueViolationKey returns the column and value named in a unique violation's detail,
// e.g. "Key (seat_id)=(104) already exists.".
func UniqueViolationKey(err error) (column, value string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrCodeUniqueViolation {
		return "", "", false
	}
	m := uniqueKeyDetail.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
