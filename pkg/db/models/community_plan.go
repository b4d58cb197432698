package models

import (
	"time"

	dbtypes "github.com/evamarchetti/lessonplanner-backend/pkg/db/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunityPlan is a publicly visible shared plan. SharedBy is derived from
// the sharer's email local part at share time and never re-derived.
type CommunityPlan struct {
	ID                uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null"`
	SharedBy          string               `gorm:"column:shared_by;type:text;not null"`
	Title             string               `gorm:"type:text;not null"`
	Subject           string               `gorm:"type:text;not null"`
	GradeLevel        string               `gorm:"column:grade_level;type:text;not null"`
	LearningObjective string               `gorm:"column:learning_objective;type:text;not null"`
	PlanData          dbtypes.JSONDocument `gorm:"column:plan_data;type:jsonb;not null"`
	SharedAt          time.Time            `gorm:"column:shared_at;autoCreateTime;index"`
}

func (p *CommunityPlan) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
