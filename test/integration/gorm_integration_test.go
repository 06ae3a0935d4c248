package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/repository/specification"
	"student-analyzer-be/internal/repository/unitofwork"
	"student-analyzer-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.AccountRepository())
	assert.NotNil(t, uow.InteractionRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	email := fmt.Sprintf("it-%s@example.com", uuid.NewString()[:8])
	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM ui_interactions WHERE user_email = ?", email)
		gormDB.Exec("DELETE FROM login WHERE email = ?", email)
	})

	t.Run("Account round trip", func(t *testing.T) {
		repo := uow.AccountRepository()
		require.NoError(t, repo.Create(ctx, &entity.Account{Email: email, PasswordHash: "hash"}))

		require.NoError(t, repo.RecordLogin(ctx, email, time.Now()))

		found, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 1, found.LoginCount)
		assert.NotNil(t, found.LastLoginAt)
	})

	t.Run("Interaction counters", func(t *testing.T) {
		repo := uow.InteractionRepository()
		row := &entity.Interaction{
			UserEmail:    email,
			DocumentName: "notes.pdf",
			FileType:     "pdf",
			FileSize:     1024,
			LanguageUsed: "English",
		}
		require.NoError(t, repo.Create(ctx, row))
		require.NotZero(t, row.SNo)

		require.NoError(t, repo.IncrementCounter(ctx, row.SNo, entity.CounterDoubtSessions))
		require.NoError(t, repo.IncrementCounter(ctx, row.SNo, entity.CounterDoubtSessions))
		require.NoError(t, repo.UpdateQuiz(ctx, row.SNo, 80, []byte(`{"score":4,"total":5}`)))

		latest, err := repo.FindOne(ctx, specification.ByUserEmail{Email: email}, specification.LatestAnalysis())
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, 2, latest.DoubtSessions)
		require.NotNil(t, latest.QuizScore)
		assert.InDelta(t, 80.0, *latest.QuizScore, 0.001)
	})
}
