package ownership

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/database"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Name: "Test", Email: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func asPrincipal(u *models.User) *principal.Principal {
	return &principal.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// A foreign principal is rejected before the user row is even looked
// up, so the denial carries no existence information.
func TestUserForbiddenBeforeExistence(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)
	caller := seedUser(t, db, "alice@example.com", models.RoleCustomer)

	// target does not exist at all, yet the caller sees Forbidden
	_, err := r.User(asPrincipal(caller), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUserSelfAndAdmin(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)
	user := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	got, err := r.User(asPrincipal(user), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = r.User(asPrincipal(admin), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// an admin acting on a missing user does get NotFound
	_, err = r.User(asPrincipal(admin), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStoreWrongOwnerReadsMissing(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", models.RoleCustomer)

	store := &models.Store{ID: uuid.New(), UserID: alice.ID, Name: "Warung Kopi"}
	require.NoError(t, db.Create(store).Error)

	// bob resolving alice's store under his own path: the store exists,
	// but not under him, so it reads as missing
	_, err := r.Store(asPrincipal(bob), bob.ID, store.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// bob resolving under alice's path never reaches the store query
	_, err = r.Store(asPrincipal(bob), alice.ID, store.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCatalogEntitiesScopedToStore(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)

	storeA := &models.Store{ID: uuid.New(), UserID: alice.ID, Name: "Shop A"}
	storeB := &models.Store{ID: uuid.New(), UserID: alice.ID, Name: "Shop B"}
	require.NoError(t, db.Create(storeA).Error)
	require.NoError(t, db.Create(storeB).Error)

	category := &models.Category{ID: uuid.New(), StoreID: storeA.ID, Name: "Drinks"}
	require.NoError(t, db.Create(category).Error)

	got, err := r.Category(storeA.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.ID)

	_, err = r.Category(storeB.ID, category.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
