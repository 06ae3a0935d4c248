package model

import (
	"time"

	"gorm.io/datatypes"
)

type UiInteraction struct {
	SNo                   int64          `gorm:"column:s_no;primaryKey;autoIncrement"`
	UserEmail             string         `gorm:"type:varchar(255);not null;index"`
	DocumentName          string         `gorm:"type:varchar(255)"`
	FileType              string         `gorm:"type:varchar(50)"`
	FileSize              int64          `gorm:"default:0"`
	LanguageUsed          string         `gorm:"type:varchar(50);not null;default:'English'"`
	DoubtSessions         int            `gorm:"not null;default:0"`
	AssessmentsTaken      int            `gorm:"not null;default:0"`
	QuizScore             *float64       `gorm:"type:numeric(5,2)"`
	QuizDetail            datatypes.JSON `gorm:"type:jsonb"`
	VideoScriptsGenerated int            `gorm:"not null;default:0"`
	VideosGenerated       int            `gorm:"not null;default:0"`
	PdfsGenerated         int            `gorm:"not null;default:0"`
	AnalysisTimestamp     time.Time      `gorm:"autoCreateTime;index"`
}

func (UiInteraction) TableName() string {
	return "ui_interactions"
}
