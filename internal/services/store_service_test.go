package services

import (
	"context"
	"testing"

	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStoreService(t *testing.T) (*StoreService, *gorm.DB, *fakeUploader) {
	db := newTestDB(t)
	uploads := &fakeUploader{}
	return NewStoreService(db, ownership.NewResolver(db), uploads), db, uploads
}

func TestStoreCreateAndGet(t *testing.T) {
	svc, db, _ := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	p := asPrincipal(user)

	created, err := svc.Create(p, user.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)

	got, err := svc.Get(p, user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warung Kopi", got.Name)
}

// The same owner cannot reuse a store name; another owner can.
func TestStoreDuplicateNameScopedToOwner(t *testing.T) {
	svc, db, _ := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	other := seedUser(t, db, "bob@example.com")

	_, err := svc.Create(asPrincipal(user), user.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)

	_, err = svc.Create(asPrincipal(user), user.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Create(asPrincipal(other), other.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)
}

func TestStoreUpdateKeepsOwnName(t *testing.T) {
	svc, db, _ := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	p := asPrincipal(user)

	created, err := svc.Create(p, user.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)

	// renaming to its own current name is not a conflict
	_, err = svc.Update(p, user.ID, created.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)
}

func TestStoreGetForeignOwner(t *testing.T) {
	svc, db, _ := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	intruder := seedUser(t, db, "mallory@example.com")

	created, err := svc.Create(asPrincipal(user), user.ID, &dto.StoreRequest{Name: "Warung Kopi"})
	require.NoError(t, err)

	// a foreign principal is cut off before resource existence leaks
	_, err = svc.Get(asPrincipal(intruder), user.ID, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// the owner path with the wrong store reads as missing
	_, err = svc.Get(asPrincipal(intruder), intruder.ID, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStoreDeleteCascades(t *testing.T) {
	svc, db, uploads := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	p := asPrincipal(user)

	store := seedStore(t, db, user.ID, "Warung Kopi")
	category := seedCategory(t, db, store.ID, "Drinks")
	color := seedColor(t, db, store.ID, "Red", "#ff0000")
	product := seedProduct(t, db, store.ID, category.ID, color.ID, "Americano")
	seedImage(t, db, product.ID, "asset-keep-out")

	require.NoError(t, svc.Delete(context.Background(), p, user.ID, store.ID))

	for _, m := range []interface{}{&models.Store{}, &models.Product{}, &models.Category{}, &models.Color{}, &models.Image{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.EqualValues(t, 0, n)
	}
	assert.Contains(t, uploads.destroyedIDs(), "asset-keep-out")
}

func TestStoreListPagination(t *testing.T) {
	svc, db, _ := newStoreService(t)
	user := seedUser(t, db, "alice@example.com")
	p := asPrincipal(user)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(p, user.ID, &dto.StoreRequest{Name: "Store " + string(rune('A'+i))})
		require.NoError(t, err)
	}

	stores, paging, err := svc.List(p, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
	assert.Equal(t, 2, paging.TotalPage)

	stores, _, err = svc.List(p, user.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}
