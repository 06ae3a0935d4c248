package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ByEmail matches the login table's email, case-insensitively
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", strings.ToLower(s.Email))
}

// ByUserEmail matches rows owned by a user in the usage table
type ByUserEmail struct {
	Email string
}

func (s ByUserEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_email = ?", s.Email)
}

// LatestAnalysis orders usage rows newest first
func LatestAnalysis() Specification {
	return OrderBy{Field: "analysis_timestamp", Desc: true}
}
