package sessions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
)

func setupSessionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sessions := `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  expires_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(sessions).Error)
	return db
}

func TestFindActiveFiltersExpiredSessions(t *testing.T) {
	db := setupSessionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	live := &models.Session{ID: "live-session", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}
	stale := &models.Session{ID: "stale-session", UserID: uuid.New(), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	found, err := repo.FindActive(ctx, "live-session", now)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, live.UserID, found.UserID)

	expired, err := repo.FindActive(ctx, "stale-session", now)
	require.NoError(t, err)
	require.Nil(t, expired)

	missing, err := repo.FindActive(ctx, "no-such-session", now)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := setupSessionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	session := &models.Session{ID: "to-delete", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, session))

	require.NoError(t, repo.Delete(ctx, "to-delete"))
	found, err := repo.FindActive(ctx, "to-delete", now)
	require.NoError(t, err)
	require.Nil(t, found)

	require.NoError(t, repo.Delete(ctx, "to-delete"))
	require.NoError(t, repo.Delete(ctx, "never-existed"))
}
