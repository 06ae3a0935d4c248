package entity

import "time"

// UsageCounter names one of the per-analysis counters that may be incremented
type UsageCounter string

const (
	CounterDoubtSessions         UsageCounter = "doubt_sessions"
	CounterAssessmentsTaken      UsageCounter = "assessments_taken"
	CounterVideoScriptsGenerated UsageCounter = "video_scripts_generated"
	CounterVideosGenerated       UsageCounter = "videos_generated"
	CounterPdfsGenerated         UsageCounter = "pdfs_generated"
)

// Valid guards the column whitelist; counters end up in an UPDATE statement
func (c UsageCounter) Valid() bool {
	switch c {
	case CounterDoubtSessions, CounterAssessmentsTaken, CounterVideoScriptsGenerated,
		CounterVideosGenerated, CounterPdfsGenerated:
		return true
	}
	return false
}

type Interaction struct {
	SNo                   int64
	UserEmail             string
	DocumentName          string
	FileType              string
	FileSize              int64
	LanguageUsed          string
	DoubtSessions         int
	AssessmentsTaken      int
	QuizScore             *float64
	QuizDetail            []byte
	VideoScriptsGenerated int
	VideosGenerated       int
	PdfsGenerated         int
	AnalysisTimestamp     time.Time
}
