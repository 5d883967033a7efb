package services

import (
	"testing"

	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newColorService(t *testing.T) (*ColorService, *gorm.DB) {
	db := newTestDB(t)
	return NewColorService(db, ownership.NewResolver(db)), db
}

func TestColorCreateValidatesHexValue(t *testing.T) {
	svc, db := newColorService(t)
	user := seedUser(t, db, "alice@example.com")
	store := seedStore(t, db, user.ID, "Warung Kopi")
	p := asPrincipal(user)

	for _, value := range []string{"red", "#12345", "ff0000", "#gggggg"} {
		_, err := svc.Create(p, user.ID, store.ID, &dto.ColorRequest{Name: "Red", Value: value})
		require.Error(t, err, value)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	for _, value := range []string{"#f00", "#ff0000", "#AbCdEf"} {
		created, err := svc.Create(p, user.ID, store.ID, &dto.ColorRequest{Name: "C " + value, Value: value})
		require.NoError(t, err, value)
		assert.Equal(t, value, created.Value)
	}
}

func TestColorDeleteInUse(t *testing.T) {
	svc, db := newColorService(t)
	user := seedUser(t, db, "alice@example.com")
	store := seedStore(t, db, user.ID, "Warung Kopi")
	p := asPrincipal(user)

	category := seedCategory(t, db, store.ID, "Drinks")
	color := seedColor(t, db, store.ID, "Red", "#ff0000")
	seedProduct(t, db, store.ID, category.ID, color.ID, "Americano")

	err := svc.Delete(p, user.ID, store.ID, color.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestColorUpdate(t *testing.T) {
	svc, db := newColorService(t)
	user := seedUser(t, db, "alice@example.com")
	store := seedStore(t, db, user.ID, "Warung Kopi")
	p := asPrincipal(user)

	color := seedColor(t, db, store.ID, "Red", "#ff0000")

	updated, err := svc.Update(p, user.ID, store.ID, color.ID, &dto.ColorRequest{Name: "Crimson", Value: "#dc143c"})
	require.NoError(t, err)
	assert.Equal(t, "Crimson", updated.Name)
	assert.Equal(t, "#dc143c", updated.Value)
}
