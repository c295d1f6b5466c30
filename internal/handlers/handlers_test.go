package handlers

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/courtier/internal/models"
)

// openTestDB opens a throwaway sqlite database with the full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Broker{}, &models.SiteSettings{}, &models.PdfRequest{}))

	return db
}

func seedBroker(t *testing.T, db *gorm.DB, broker models.Broker) models.Broker {
	t.Helper()
	require.NoError(t, db.Create(&broker).Error)
	return broker
}
