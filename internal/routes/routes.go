package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/handlers"
	"github.com/storehubhq/storehub-backend/internal/middleware"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	User     *handlers.UserHandler
	Contact  *handlers.ContactHandler
	Address  *handlers.AddressHandler
	Store    *handlers.StoreHandler
	Banner   *handlers.BannerHandler
	Category *handlers.CategoryHandler
	Color    *handlers.ColorHandler
	Product  *handlers.ProductHandler
	Image    *handlers.ImageHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/google", h.Auth.GoogleSignIn)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Everything under /users/:userId is owner-scoped; the ownership
	// resolver inside each service re-checks the principal against the
	// path user.
	users := api.Group("/users/:userId", middleware.JWTProtected(cfg))
	users.Get("/", h.User.Get)
	users.Put("/", h.User.Update)
	users.Delete("/", h.User.Delete)
	users.Put("/avatar", h.User.UpdateAvatar)

	contacts := users.Group("/contacts")
	contacts.Post("/", h.Contact.Create)
	contacts.Get("/", h.Contact.List)
	contacts.Get("/:contactId", h.Contact.Get)
	contacts.Put("/:contactId", h.Contact.Update)
	contacts.Delete("/:contactId", h.Contact.Delete)

	addresses := users.Group("/addresses")
	addresses.Post("/", h.Address.Create)
	addresses.Get("/", h.Address.List)
	addresses.Get("/:addressId", h.Address.Get)
	addresses.Put("/:addressId", h.Address.Update)
	addresses.Delete("/:addressId", h.Address.Delete)

	stores := users.Group("/stores")
	stores.Post("/", h.Store.Create)
	stores.Get("/", h.Store.List)

	store := stores.Group("/:storeId")
	store.Get("/", h.Store.Get)
	store.Put("/", h.Store.Update)
	store.Delete("/", h.Store.Delete)

	banners := store.Group("/banners")
	banners.Post("/", h.Banner.Create)
	banners.Get("/", h.Banner.List)
	banners.Get("/:bannerId", h.Banner.Get)
	banners.Put("/:bannerId", h.Banner.Update)
	banners.Delete("/:bannerId", h.Banner.Delete)

	categories := store.Group("/categories")
	categories.Post("/", h.Category.Create)
	categories.Get("/", h.Category.List)
	categories.Get("/:categoryId", h.Category.Get)
	categories.Put("/:categoryId", h.Category.Update)
	categories.Delete("/:categoryId", h.Category.Delete)

	colors := store.Group("/colors")
	colors.Post("/", h.Color.Create)
	colors.Get("/", h.Color.List)
	colors.Get("/:colorId", h.Color.Get)
	colors.Put("/:colorId", h.Color.Update)
	colors.Delete("/:colorId", h.Color.Delete)

	products := store.Group("/products")
	products.Post("/", h.Product.Create)
	products.Get("/", h.Product.List)

	product := products.Group("/:productId")
	product.Get("/", h.Product.Get)
	product.Put("/", h.Product.Update)
	product.Delete("/", h.Product.Delete)

	images := product.Group("/images")
	images.Post("/", h.Image.Create)
	images.Get("/", h.Image.List)
	images.Get("/:imageId", h.Image.Get)
	images.Delete("/:imageId", h.Image.Delete)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", h.User.ListAll)
}
