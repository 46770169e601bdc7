package repositories

import (
	"testing"

	"github.com/Ekhol/warbler/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The pool is pinned
// to a single connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

func signupUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()
	user, err := repo.Signup(username, email, "password", "")
	require.NoError(t, err)
	return user
}
