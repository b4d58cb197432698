package models

import (
	"time"

	dbtypes "github.com/evamarchetti/lessonplanner-backend/pkg/db/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonPlan is an append-only saved plan. PlanData holds the full document;
// the scalar columns are denormalized copies for filtering and ordering.
type LessonPlan struct {
	ID                uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title             string               `gorm:"type:text;not null"`
	Subject           string               `gorm:"type:text;not null"`
	GradeLevel        string               `gorm:"column:grade_level;type:text;not null"`
	LearningObjective string               `gorm:"column:learning_objective;type:text;not null"`
	PlanData          dbtypes.JSONDocument `gorm:"column:plan_data;type:jsonb;not null"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (p *LessonPlan) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
