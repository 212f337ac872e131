package vendors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS vendors (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  contact_person TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  status TEXT NOT NULL DEFAULT 'Active',
  rating REAL,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedVendor(t *testing.T, repo Repository, name, category string, status enums.VendorStatus, contact, email *string) *models.Vendor {
	t.Helper()
	vendor, err := repo.Create(context.Background(), &models.Vendor{
		Name:          name,
		Category:      category,
		Status:        status,
		ContactPerson: contact,
		Email:         email,
	})
	require.NoError(t, err)
	return vendor
}

func strPtr(v string) *string { return &v }

func TestVendorsRepoListByCategoryIsCaseInsensitive(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)

	seedVendor(t, repo, "Shine Bros", "Detailing", enums.VendorStatusActive, nil, nil)
	seedVendor(t, repo, "GearWorks", "Mechanical", enums.VendorStatusActive, nil, nil)

	detailing, err := repo.ListByCategory(context.Background(), "detailing")
	require.NoError(t, err)
	require.Len(t, detailing, 1)
	assert.Equal(t, "Shine Bros", detailing[0].Name)
}

func TestVendorsRepoListByStatus(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)

	seedVendor(t, repo, "Shine Bros", "Detailing", enums.VendorStatusActive, nil, nil)
	seedVendor(t, repo, "Old Paint Co", "Body", enums.VendorStatusInactive, nil, nil)

	inactive, err := repo.ListByStatus(context.Background(), enums.VendorStatusInactive)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "Old Paint Co", inactive[0].Name)
}

func TestVendorsRepoSearchMatchesAllFields(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)

	seedVendor(t, repo, "Shine Bros", "Detailing", enums.VendorStatusActive, strPtr("Ana Reyes"), strPtr("ana@shinebros.com"))
	seedVendor(t, repo, "GearWorks", "Mechanical", enums.VendorStatusActive, strPtr("Tom Boyd"), strPtr("tom@gearworks.io"))
	seedVendor(t, repo, "Glass Pros", "Glass", enums.VendorStatusActive, nil, nil)

	byName, err := repo.Search(context.Background(), "shine")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Shine Bros", byName[0].Name)

	byContact, err := repo.Search(context.Background(), "REYES")
	require.NoError(t, err)
	require.Len(t, byContact, 1)

	byEmail, err := repo.Search(context.Background(), "gearworks.io")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "GearWorks", byEmail[0].Name)

	byCategory, err := repo.Search(context.Background(), "glass")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	none, err := repo.Search(context.Background(), "upholstery")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVendorsRepoUpdate(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)

	vendor := seedVendor(t, repo, "Shine Bros", "Detailing", enums.VendorStatusActive, nil, nil)

	err := repo.Update(context.Background(), vendor.ID, map[string]any{
		"status": enums.VendorStatusInactive,
		"rating": 4.5,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusInactive, found.Status)
	require.NotNil(t, found.Rating)
	assert.InDelta(t, 4.5, *found.Rating, 0.01)
}
