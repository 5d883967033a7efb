package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/database"
	"github.com/storehubhq/storehub-backend/internal/handlers"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "routes-test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	resolver := ownership.NewResolver(db)
	app := fiber.New()
	Setup(app, cfg, db, Handlers{
		Auth:     handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:   handlers.NewHealthHandler(db),
		User:     handlers.NewUserHandler(services.NewUserService(db, resolver, nil)),
		Contact:  handlers.NewContactHandler(services.NewContactService(db, resolver)),
		Address:  handlers.NewAddressHandler(services.NewAddressService(db, resolver)),
		Store:    handlers.NewStoreHandler(services.NewStoreService(db, resolver, nil)),
		Banner:   handlers.NewBannerHandler(services.NewBannerService(db, resolver)),
		Category: handlers.NewCategoryHandler(services.NewCategoryService(db, resolver)),
		Color:    handlers.NewColorHandler(services.NewColorService(db, resolver)),
		Product:  handlers.NewProductHandler(services.NewProductService(db, resolver, nil)),
		Image:    handlers.NewImageHandler(services.NewImageService(db, resolver, nil)),
	})

	return &testApp{app: app, db: db, cfg: cfg}
}

func (ta *testApp) seedUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Name: "Test", Email: email, Role: models.RoleCustomer}
	require.NoError(t, ta.db.Create(user).Error)
	return user
}

func (ta *testApp) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(ta.cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

func (ta *testApp) request(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserRoutesRequireToken(t *testing.T) {
	ta := newTestApp(t)
	user := ta.seedUser(t, "alice@example.com")

	resp := ta.request(t, http.MethodGet, "/api/users/"+user.ID.String(), "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// A valid token for one user must not open another user's subtree.
func TestUserRoutesScopedToPrincipal(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.seedUser(t, "alice@example.com")
	mallory := ta.seedUser(t, "mallory@example.com")
	token := ta.tokenFor(t, mallory)

	resp := ta.request(t, http.MethodGet, "/api/users/"+alice.ID.String(), token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ta.request(t, http.MethodGet, "/api/users/"+mallory.ID.String(), token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginFlow(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.request(t, http.MethodPost, "/api/auth/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			User        struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
		StatusCode int `json:"statusCode"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)

	// the issued token opens the user's own subtree
	resp = ta.request(t, http.MethodGet, "/api/users/"+envelope.Data.User.ID,
		envelope.Data.AccessToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStoreCRUDOverHTTP(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.seedUser(t, "alice@example.com")
	token := ta.tokenFor(t, alice)
	base := "/api/users/" + alice.ID.String() + "/stores"

	resp := ta.request(t, http.MethodPost, base, token, `{"name":"Warung Kopi"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ta.request(t, http.MethodPost, base, token, `{"name":"Warung Kopi"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ta.request(t, http.MethodPost, base, token, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.request(t, http.MethodGet, base, token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A syntactically invalid id in the path reads as a missing resource.
func TestMalformedPathIDReadsMissing(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.seedUser(t, "alice@example.com")
	token := ta.tokenFor(t, alice)

	resp := ta.request(t, http.MethodGet,
		"/api/users/"+alice.ID.String()+"/stores/not-a-uuid", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRouteDeniedForCustomers(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.seedUser(t, "alice@example.com")
	token := ta.tokenFor(t, alice)

	resp := ta.request(t, http.MethodGet, "/api/admin/users", token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// promote and retry with a fresh token
	require.NoError(t, ta.db.Model(alice).Update("role", models.RoleAdmin).Error)
	alice.Role = models.RoleAdmin
	resp = ta.request(t, http.MethodGet, "/api/admin/users", ta.tokenFor(t, alice), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
