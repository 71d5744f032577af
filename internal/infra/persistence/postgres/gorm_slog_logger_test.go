package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"cosmiccraft/config"
	deliverycontext "cosmiccraft/internal/delivery/context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestQueryLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("expected errors are quiet", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), &config.Config{})

		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
		l.Trace(context.Background(), time.Now(), query, &pgconn.PgError{Code: "23505"})

		assert.Empty(t, buf.String())
	})

	t.Run("failure uses request logger", func(t *testing.T) {
		var fallback, scoped bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewTextHandler(&fallback, nil)), &config.Config{})
		ctx := deliverycontext.WithLogger(context.Background(),
			slog.New(slog.NewTextHandler(&scoped, nil)).With(slog.String("request_id", "rid-7")))

		l.Trace(ctx, time.Now(), query, errors.New("connection reset"))

		assert.Empty(t, fallback.String())
		assert.Contains(t, scoped.String(), "GORM query failed")
		assert.Contains(t, scoped.String(), "request_id=rid-7")
	})

	t.Run("slow query warns", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), &config.Config{})

		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})
}
