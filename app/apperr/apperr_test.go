package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindSentinels(t *testing.T) {
	err := fmt.Errorf("loading group: %w", NotFound("product group %d not found", 7))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "loading group: product group 7 not found", err.Error())
}

func TestStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    *Error
		status int
	}{
		{"not found", NotFound("x"), http.StatusNotFound},
		{"conflict", Conflict("x"), http.StatusConflict},
		{"bad request", BadRequest("x"), http.StatusBadRequest},
		{"internal", Internal(errors.New("boom"), "x"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status())
		})
	}
}

func TestMissingIDs(t *testing.T) {
	err := MissingIDs("variation products", []uint{2, 9})

	assert.Equal(t, KindBadRequest, err.Kind)
	assert.Equal(t, []uint{2, 9}, err.IDs)
	assert.Equal(t, "variation products not found: [2, 9]", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "saving"))
	})

	t.Run("classified errors pass through", func(t *testing.T) {
		orig := BadRequest("bad ids")
		assert.Same(t, orig, Wrap(orig, "saving"))
	})

	t.Run("unknown errors become internal with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, "saving product group")

		assert.Equal(t, KindInternal, KindOf(err))
		assert.Equal(t, "saving product group: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("unique violations become conflict", func(t *testing.T) {
		err := Wrap(gorm.ErrDuplicatedKey, "creating brand")
		assert.Equal(t, KindConflict, KindOf(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"lib/pq", &pq.Error{Code: "23505"}, true},
		{"lib/pq other code", &pq.Error{Code: "23503"}, false},
		{"pgx", &pgconn.PgError{Code: "23505"}, true},
		{"mysql", &mysql.MySQLError{Number: 1062}, true},
		{"sqlite message", errors.New("UNIQUE constraint failed: brands.name"), true},
		{"plain", errors.New("timeout"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}
