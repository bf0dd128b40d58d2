package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/model"
)

// newTestLedger creates an in-memory history database for testing.
func newTestLedger(t *testing.T) *LedgerDB {
	t.Helper()

	db, err := OpenLedger(":memory:")
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func sampleRecords() []model.SessionRecord {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{ID: "a", Kind: model.ModeWork, PlannedSeconds: 1500, CompletedAt: base.Add(25 * time.Minute)},
		{ID: "b", Kind: model.ModeBreak, PlannedSeconds: 300, CompletedAt: base.Add(30 * time.Minute)},
		{ID: "c", Kind: model.ModeWork, PlannedSeconds: 1500, CompletedAt: base.Add(55 * time.Minute)},
	}
}

func TestLedgerMigrations(t *testing.T) {
	db := newTestLedger(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sessions'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "sessions table not found")

	require.NoError(t, db.RunMigrations(), "migrations must be re-runnable")
}

func TestLedger_SaveAndLoad(t *testing.T) {
	db := newTestLedger(t)
	ctx := context.Background()

	records, err := db.LoadRecords(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	require.NoError(t, db.SaveRecords(ctx, sampleRecords()))

	records, err = db.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)
}

func TestLedger_SaveSkipsKnownRecords(t *testing.T) {
	db := newTestLedger(t)
	ctx := context.Background()
	all := sampleRecords()

	require.NoError(t, db.SaveRecords(ctx, all[:2]))
	require.NoError(t, db.SaveRecords(ctx, all))
	require.NoError(t, db.SaveRecords(ctx, all))

	records, err := db.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{records[0].ID, records[1].ID, records[2].ID})
}

func TestLedger_StoresCompletionTimeInUTC(t *testing.T) {
	db := newTestLedger(t)
	ctx := context.Background()
	zone := time.FixedZone("UTC+3", 3*60*60)
	completed := time.Date(2026, 3, 2, 12, 0, 0, 0, zone)

	require.NoError(t, db.SaveRecords(ctx, []model.SessionRecord{
		{ID: "z", Kind: model.ModeWork, PlannedSeconds: 60, CompletedAt: completed},
	}))

	records, err := db.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, completed.Equal(records[0].CompletedAt))
	assert.Equal(t, time.UTC, records[0].CompletedAt.Location())
}

func TestLedger_Clear(t *testing.T) {
	db := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, db.SaveRecords(ctx, sampleRecords()))

	require.NoError(t, db.ClearRecords(ctx))

	records, err := db.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), LedgerFileName)
	ctx := context.Background()

	db, err := OpenLedger(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveRecords(ctx, sampleRecords()))
	require.NoError(t, db.Close())

	db, err = OpenLedger(path)
	require.NoError(t, err)
	defer db.Close()

	records, err := db.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
