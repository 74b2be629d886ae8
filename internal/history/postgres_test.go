package history

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/unifiwatch/stockwatch/internal/checker"
)

func TestRecordCheckInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresProviderWithPool(mock, "checks")
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()

	rec := checker.CheckRecord{
		RunID:         "uuid-v7",
		URL:           "https://store.example.com/products/cloud-gateway-fiber",
		Product:       "Cloud Gateway Fiber",
		Verdict:       checker.VerdictAvailable,
		Token:         "AVAILABLE",
		ScreenshotURI: "file:///data/screenshots/cgf.png",
		Notified:      true,
		CheckedAt:     now,
		DurationMs:    2150,
	}

	mock.ExpectExec("INSERT INTO checks").
		WithArgs(
			rec.RunID,
			rec.URL,
			rec.Product,
			string(rec.Verdict),
			rec.Token,
			rec.ScreenshotURI,
			rec.Notified,
			rec.ErrorText,
			rec.CheckedAt,
			rec.DurationMs,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.RecordCheck(context.Background(), rec)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCheckRequiresRunID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresProviderWithPool(mock, "checks")
	require.NoError(t, err)

	err = store.RecordCheck(context.Background(), checker.CheckRecord{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresProviderWithPoolValidatesTable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPostgresProviderWithPool(mock, "checks; DROP TABLE checks")
	require.Error(t, err)

	store, err := NewPostgresProviderWithPool(mock, "")
	require.NoError(t, err)
	require.Equal(t, "checks", store.table)
}
