package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/contabilisync/backend/db"
	"github.com/contabilisync/backend/models"
)

// testDB opens an isolated in-memory database with the production schema,
// including the partial unique slot index.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

// newTestUsers wires a UserService over a fresh test database.
func newTestUsers(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	gdb := testDB(t)
	return NewUserService(gdb, NewPasswordService()), gdb
}

func mustCreateUser(t *testing.T, users *UserService, name, email string, role models.UserRole) *models.User {
	t.Helper()
	user, err := users.Create(CreateInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}
