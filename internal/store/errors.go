// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateSlug is returned by write operations that lose a slug
// race. The pre-insert existence checks keep the common path friendly;
// the unique index is the authority under concurrency.
var ErrDuplicateSlug = errors.New("slug already taken")

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
