package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/kanjirad/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "decomposition", "亜"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "decomposition", "亜")
	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "decomposition 亜: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want error
	}{
		{"23514", domain.ErrValidation},
		{"23502", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapError(&pgconn.PgError{Code: tt.code}, "decomposition", "亜")
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(code %s) = %v, want wrap of %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMapError_ContextPassThrough(t *testing.T) {
	t.Parallel()

	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(fmt.Errorf("query: %w", cause), "decomposition", "亜")
		if !errors.Is(got, cause) {
			t.Errorf("MapError should preserve %v, got %v", cause, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("context error mapped to ErrNotFound: %v", got)
		}
	}
}

func TestMapError_Unknown(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	got := MapError(cause, "decomposition", "亜")
	if !errors.Is(got, cause) {
		t.Errorf("MapError should wrap unknown errors, got %v", got)
	}
}
