package repositories

import (
	"fmt"
	"testing"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory SQLite database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.DeviceToken{},
	))
	return db
}
