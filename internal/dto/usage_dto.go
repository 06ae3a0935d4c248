package dto

// UsageKind selects what a usage message does to the ui_interactions table
type UsageKind string

const (
	UsageDocumentAnalyzed UsageKind = "document_analyzed"
	UsageCounterIncrement UsageKind = "counter_increment"
	UsageQuizSubmitted    UsageKind = "quiz_submitted"
)

// PublishUsageMessage travels over the in-process usage topic
type PublishUsageMessage struct {
	Kind      UsageKind `json:"kind"`
	UserEmail string    `json:"user_email"`

	// document_analyzed
	DocumentName string `json:"document_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	Language     string `json:"language,omitempty"`

	// counter_increment
	Counter string `json:"counter,omitempty"`

	// quiz_submitted
	QuizScore  float64     `json:"quiz_score,omitempty"`
	QuizDetail interface{} `json:"quiz_detail,omitempty"`
}

type UsageSummary struct {
	DocumentName          string   `json:"document_name"`
	FileType              string   `json:"file_type"`
	LanguageUsed          string   `json:"language_used"`
	DoubtSessions         int      `json:"doubt_sessions"`
	AssessmentsTaken      int      `json:"assessments_taken"`
	QuizScore             *float64 `json:"quiz_score,omitempty"`
	VideoScriptsGenerated int      `json:"video_scripts_generated"`
	VideosGenerated       int      `json:"videos_generated"`
	PdfsGenerated         int      `json:"pdfs_generated"`
	AnalysisTimestamp     string   `json:"analysis_timestamp"`
}

type UsageHistory struct {
	Items []UsageSummary `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}
