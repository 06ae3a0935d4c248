package main

import (
	"log"
	"os"

	"student-analyzer-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate for login and ui_interactions...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Reporting view over the usage table
	log.Println("Step 2: Creating reporting views...")
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW user_usage_summary AS
		 SELECT ui.user_email,
		        COUNT(*) AS documents_analyzed,
		        COALESCE(SUM(ui.doubt_sessions), 0) AS doubt_sessions,
		        COALESCE(SUM(ui.assessments_taken), 0) AS assessments_taken,
		        AVG(ui.quiz_score) AS average_quiz_score,
		        COALESCE(SUM(ui.videos_generated), 0) AS videos_generated,
		        COALESCE(SUM(ui.pdfs_generated), 0) AS pdfs_generated,
		        MAX(ui.analysis_timestamp) AS last_analysis_at
		 FROM ui_interactions ui
		 GROUP BY ui.user_email;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
