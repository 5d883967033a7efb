package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/database"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/uploader"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps the in-memory database alive and serializes
// concurrent transactions the way a real server would under row locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-0123456789abcdef",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		GoogleClientID:   "test-client-id",
	}
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: email,
		Role:  models.RoleCustomer,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := seedUser(t, db, email)
	require.NoError(t, db.Model(user).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
	return user
}

func asPrincipal(u *models.User) *principal.Principal {
	return &principal.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func seedStore(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Store {
	t.Helper()
	store := &models.Store{ID: uuid.New(), UserID: userID, Name: name}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedCategory(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), StoreID: storeID, Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedColor(t *testing.T, db *gorm.DB, storeID uuid.UUID, name, value string) *models.Color {
	t.Helper()
	color := &models.Color{ID: uuid.New(), StoreID: storeID, Name: name, Value: value}
	require.NoError(t, db.Create(color).Error)
	return color
}

func seedProduct(t *testing.T, db *gorm.DB, storeID, categoryID, colorID uuid.UUID, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		StoreID:    storeID,
		CategoryID: categoryID,
		ColorID:    colorID,
		Name:       name,
		Price:      9.99,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedImage(t *testing.T, db *gorm.DB, productID uuid.UUID, publicID string) *models.Image {
	t.Helper()
	image := &models.Image{
		ID:        uuid.New(),
		ProductID: productID,
		URL:       "https://img.test/" + publicID,
		PublicID:  publicID,
	}
	require.NoError(t, db.Create(image).Error)
	return image
}

// fakeUploader records uploads and destroys. failOn makes the n-th
// Upload call fail (1-based, 0 disables).
type fakeUploader struct {
	mu        sync.Mutex
	uploads   int
	destroyed []string
	failOn    int
}

func (f *fakeUploader) Upload(_ context.Context, filename string, r io.Reader) (*uploader.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.failOn != 0 && f.uploads == f.failOn {
		return nil, fmt.Errorf("image host rejected %s", filename)
	}
	publicID := fmt.Sprintf("asset-%d", f.uploads)
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	return &uploader.Asset{
		URL:      "https://img.test/" + publicID,
		PublicID: publicID,
		Metadata: map[string]interface{}{"format": "png", "bytes": int64(42)},
	}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func (f *fakeUploader) destroyedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.destroyed...)
}
