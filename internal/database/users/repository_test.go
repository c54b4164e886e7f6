package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "test_users.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func createUser(t *testing.T, repo *Repository) *entities.User {
	t.Helper()
	user := &entities.User{
		Name:         "Test User",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestRepository_CreateUser(t *testing.T) {
	repo := setupTestDB(t)

	user := createUser(t, repo)

	assert.NotZero(t, user.ID)
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	repo := setupTestDB(t)
	createUser(t, repo)

	err := repo.CreateUser(context.Background(), &entities.User{
		Name:         "Other",
		Username:     "testuser",
		Email:        "other@example.com",
		PasswordHash: "hash",
	})

	assert.Error(t, err)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo)

	user, err := repo.GetUserByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo)

	user, err := repo.GetUserByUsername(context.Background(), "testuser")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repo := setupTestDB(t)
	created := createUser(t, repo)

	user, err := repo.GetUserByEmail(context.Background(), "TEST@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
