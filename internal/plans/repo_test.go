package plans

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
	dbtypes "github.com/evamarchetti/lessonplanner-backend/pkg/db/types"
)

func setupPlansTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	lessonPlans := `
CREATE TABLE IF NOT EXISTS lesson_plans (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  subject TEXT NOT NULL,
  grade_level TEXT NOT NULL,
  learning_objective TEXT NOT NULL,
  plan_data TEXT NOT NULL,
  created_at DATETIME
);`
	communityPlans := `
CREATE TABLE IF NOT EXISTS community_plans (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  shared_by TEXT NOT NULL,
  title TEXT NOT NULL,
  subject TEXT NOT NULL,
  grade_level TEXT NOT NULL,
  learning_objective TEXT NOT NULL,
  plan_data TEXT NOT NULL,
  shared_at DATETIME
);`
	require.NoError(t, db.Exec(lessonPlans).Error)
	require.NoError(t, db.Exec(communityPlans).Error)
	return db
}

func newPlan(userID uuid.UUID, title string, created time.Time) *models.LessonPlan {
	return &models.LessonPlan{
		UserID:            userID,
		Title:             title,
		Subject:           "Math",
		GradeLevel:        "5th Grade",
		LearningObjective: "Understand fractions",
		PlanData:          dbtypes.JSONDocument(fmt.Sprintf(`{"title":%q}`, title)),
		CreatedAt:         created,
	}
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newPlan(userID, "oldest", base)))
	require.NoError(t, repo.Create(ctx, newPlan(userID, "newest", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newPlan(userID, "middle", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newPlan(uuid.New(), "other user", base.Add(3*time.Hour))))

	rows, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "newest", rows[0].Title)
	require.Equal(t, "middle", rows[1].Title)
	require.Equal(t, "oldest", rows[2].Title)
}

func TestListByUserEmpty(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)

	rows, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestListRecentAppliesLimit(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewCommunityRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		plan := &models.CommunityPlan{
			UserID:            uuid.New(),
			SharedBy:          fmt.Sprintf("teacher%d", i),
			Title:             fmt.Sprintf("plan %d", i),
			Subject:           "Math",
			GradeLevel:        "5th Grade",
			LearningObjective: "Understand fractions",
			PlanData:          dbtypes.JSONDocument(`{}`),
			SharedAt:          base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, plan))
	}

	rows, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "plan 4", rows[0].Title)
	require.Equal(t, "plan 3", rows[1].Title)
	require.Equal(t, "plan 2", rows[2].Title)
}
