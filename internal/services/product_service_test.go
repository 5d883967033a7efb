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

type productFixture struct {
	svc      *ProductService
	db       *gorm.DB
	uploads  *fakeUploader
	user     *models.User
	store    *models.Store
	category *models.Category
	color    *models.Color
}

func newProductFixture(t *testing.T) *productFixture {
	db := newTestDB(t)
	uploads := &fakeUploader{}
	user := seedUser(t, db, "alice@example.com")
	store := seedStore(t, db, user.ID, "Warung Kopi")
	return &productFixture{
		svc:      NewProductService(db, ownership.NewResolver(db), uploads),
		db:       db,
		uploads:  uploads,
		user:     user,
		store:    store,
		category: seedCategory(t, db, store.ID, "Drinks"),
		color:    seedColor(t, db, store.ID, "Red", "#ff0000"),
	}
}

func (f *productFixture) request() *dto.ProductRequest {
	return &dto.ProductRequest{
		Name:       "Americano",
		Price:      3.50,
		CategoryID: f.category.ID,
		ColorID:    f.color.ID,
	}
}

func TestProductCreateAndGet(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	created, err := f.svc.Create(p, f.user.ID, f.store.ID, f.request())
	require.NoError(t, err)

	got, err := f.svc.Get(p, f.user.ID, f.store.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Americano", got.Name)
	assert.Equal(t, f.category.ID, got.CategoryID)
}

// A category belonging to another store must read as missing, never as
// a valid link.
func TestProductCreateCrossStoreCategory(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	otherStore := seedStore(t, f.db, f.user.ID, "Second Shop")
	foreignCategory := seedCategory(t, f.db, otherStore.ID, "Snacks")

	req := f.request()
	req.CategoryID = foreignCategory.ID

	_, err := f.svc.Create(p, f.user.ID, f.store.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Category not found")
}

func TestProductUpdateCrossStoreColor(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	created, err := f.svc.Create(p, f.user.ID, f.store.ID, f.request())
	require.NoError(t, err)

	otherStore := seedStore(t, f.db, f.user.ID, "Second Shop")
	foreignColor := seedColor(t, f.db, otherStore.ID, "Blue", "#0000ff")

	_, err = f.svc.Update(p, f.user.ID, f.store.ID, created.ID,
		&dto.UpdateProductRequest{ColorID: &foreignColor.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Color not found")
}

func TestProductCreateValidation(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	req := f.request()
	req.Price = 0

	_, err := f.svc.Create(p, f.user.ID, f.store.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestProductUpdatePartial(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	created, err := f.svc.Create(p, f.user.ID, f.store.ID, f.request())
	require.NoError(t, err)

	price := 4.25
	archived := true
	_, err = f.svc.Update(p, f.user.ID, f.store.ID, created.ID, &dto.UpdateProductRequest{
		Price:      &price,
		IsArchived: &archived,
	})
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, f.db.First(&reloaded, "id = ?", created.ID).Error)
	assert.Equal(t, 4.25, reloaded.Price)
	assert.True(t, reloaded.IsArchived)
	assert.Equal(t, "Americano", reloaded.Name)
}

// An empty product page is a 404, unlike contacts and addresses.
func TestProductListEmptyNotFound(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	_, _, err := f.svc.List(p, f.user.ID, f.store.ID, 1, 10)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProductDeleteRemovesImages(t *testing.T) {
	f := newProductFixture(t)
	p := asPrincipal(f.user)

	created, err := f.svc.Create(p, f.user.ID, f.store.ID, f.request())
	require.NoError(t, err)
	seedImage(t, f.db, created.ID, "asset-del-1")
	seedImage(t, f.db, created.ID, "asset-del-2")

	require.NoError(t, f.svc.Delete(context.Background(), p, f.user.ID, f.store.ID, created.ID))

	var images int64
	require.NoError(t, f.db.Model(&models.Image{}).Count(&images).Error)
	assert.EqualValues(t, 0, images)
	assert.ElementsMatch(t, []string{"asset-del-1", "asset-del-2"}, f.uploads.destroyedIDs())
}
