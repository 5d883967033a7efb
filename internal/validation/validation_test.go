package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	paths := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("alice@example.com"))
	assert.True(t, Email("a.b+c@sub.example.co.id"))
	assert.False(t, Email("alice"))
	assert.False(t, Email("alice@"))
	assert.False(t, Email("alice@example"))
	assert.False(t, Email("a b@example.com"))
}

func TestRegisterAccumulatesFailures(t *testing.T) {
	err := Register(&dto.RegisterRequest{Name: "", Email: "bad", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldPaths(t, err))

	require.NoError(t, Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "longenough",
	}))
}

func TestContactPhone(t *testing.T) {
	require.NoError(t, Contact(&dto.ContactRequest{Phone: "+628123456789"}))
	require.NoError(t, Contact(&dto.ContactRequest{Phone: "08123456"}))

	for _, phone := range []string{"", "123456", "phone", "+62-812-3456", "1234567890123456"} {
		assert.Error(t, Contact(&dto.ContactRequest{Phone: phone}), phone)
	}
}

func TestColorHexValue(t *testing.T) {
	require.NoError(t, Color(&dto.ColorRequest{Name: "Red", Value: "#ff0000"}))
	require.NoError(t, Color(&dto.ColorRequest{Name: "Red", Value: "#F00"}))

	for _, value := range []string{"", "ff0000", "#ff00", "#ggg"} {
		assert.Error(t, Color(&dto.ColorRequest{Name: "Red", Value: value}), value)
	}
}

func TestProductRequiresReferences(t *testing.T) {
	err := Product(&dto.ProductRequest{Name: "Americano", Price: 3.5})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"category_id", "color_id"}, fieldPaths(t, err))

	err = Product(&dto.ProductRequest{
		Name: "Americano", Price: 0, CategoryID: uuid.New(), ColorID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"price"}, fieldPaths(t, err))
}

func TestUpdateRequestsIgnoreNilFields(t *testing.T) {
	require.NoError(t, UpdateUser(&dto.UpdateUserRequest{}))
	require.NoError(t, UpdateAddress(&dto.UpdateAddressRequest{}))
	require.NoError(t, UpdateProduct(&dto.UpdateProductRequest{}))

	empty := ""
	assert.Error(t, UpdateUser(&dto.UpdateUserRequest{Name: &empty}))
	assert.Error(t, UpdateAddress(&dto.UpdateAddressRequest{City: &empty}))

	nilID := uuid.Nil
	assert.Error(t, UpdateProduct(&dto.UpdateProductRequest{CategoryID: &nilID}))
}

func TestAddressRequiredFields(t *testing.T) {
	err := Address(&dto.AddressRequest{})
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]string{"street", "city", "province", "country", "postal_code"},
		fieldPaths(t, err))
}
