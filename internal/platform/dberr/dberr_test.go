// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}), http.StatusConflict},
		{"other pg", &pgconn.PgError{Code: pgerrcode.SyntaxError}, http.StatusInternalServerError},
		{"plain", errors.New("conn reset"), http.StatusInternalServerError},
		{"app error passthrough", apperr.Forbidden("no"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apperr.StatusOf(dberr.Wrap(tt.err, "test")))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "test"))
}

func TestPredicates(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "project_slug_key"})

	assert.True(t, dberr.IsUniqueViolation(err))
	assert.False(t, dberr.IsForeignKeyViolation(err))
	assert.Equal(t, "project_slug_key", dberr.Constraint(err))
	assert.Equal(t, "", dberr.Code(errors.New("x")))
}
