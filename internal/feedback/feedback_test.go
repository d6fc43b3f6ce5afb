package feedback

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/config"
	"github.com/Sguobi-git/Orders-App/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func exercise(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	svc := NewService(store)
	tick := fixedNow()
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	_, err := svc.Submit(ctx, "Jane", "jane.doe@expocci.com", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	first, err := svc.Submit(ctx, " Jane ", "jane.doe@expocci.com", "Need more chairs")
	require.NoError(t, err)
	assert.Equal(t, "Jane", first.Name)
	assert.NotEmpty(t, first.ID)

	_, err = svc.Submit(ctx, "Kevin", "kevin@expocci.com", "Great app")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Need more chairs", all[0].Message)
	assert.Empty(t, all[0].Reply)

	_, err = svc.Reply(ctx, first.ID, "", "AD")
	assert.ErrorIs(t, err, ErrEmptyReply)
	_, err = svc.Reply(ctx, "00000000-0000-0000-0000-000000000000", "ok", "AD")
	assert.ErrorIs(t, err, ErrNotFound)

	replied, err := svc.Reply(ctx, first.ID, "On the way", "AD")
	require.NoError(t, err)
	assert.Equal(t, "On the way", replied.Reply)
	assert.Equal(t, "AD", replied.RepliedBy)
	require.NotNil(t, replied.RepliedAt)
	assert.True(t, replied.RepliedAt.After(first.CreatedAt))

	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "On the way", all[0].Reply)
	assert.Empty(t, all[1].Reply)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	exercise(t, NewFileStore(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	all, err := NewFileStore(filepath.Join(t.TempDir(), "none.json")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))
	_, err := NewFileStore(path).List(context.Background())
	assert.Error(t, err)
}

// Runs against a real database when PG_HOST is set
func TestDBStore(t *testing.T) {
	if os.Getenv("PG_HOST") == "" {
		t.Skip("PG_HOST not set")
	}
	cfg := config.DatabaseConfig{
		Host:     os.Getenv("PG_HOST"),
		Port:     envOr("PG_PORT", "5432"),
		Username: envOr("PG_USERNAME", "postgres"),
		Password: os.Getenv("PG_PASSWORD"),
		Database: envOr("PG_DATABASE", "orders_app_test"),
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Exec("DROP TABLE IF EXISTS feedback_messages").Error)

	store, err := NewDBStore(db)
	require.NoError(t, err)
	exercise(t, store)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
