package router

import (
	"errors"
	"time"

	"showcase/internal/handlers"
	"showcase/internal/middleware"
	"showcase/internal/services"
	"showcase/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Auth     *services.AuthService
	Projects *services.ProjectService
	Likes    *services.LikeService
	Stats    *services.StatsService

	Sessions *session.Store
	// OAuth is nil when no login provider is configured.
	OAuth handlers.OAuthProvider

	Uploads        uploads.Store
	UploadMaxBytes int64
	// UploadDir is served under /uploads when set.
	UploadDir string

	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewSessionStore builds the cookie session store. A nil storage keeps sessions in memory.
func NewSessionStore(storage fiber.Storage, ttl time.Duration, secure bool) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:showcase_session",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

// New wires handlers and middleware into a fiber app.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "showcase",
		// Leave headroom for multipart framing around the file itself.
		BodyLimit:    int(d.UploadMaxBytes) + 1<<20,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	if d.UploadDir != "" {
		app.Static("/uploads", d.UploadDir)
	}

	auth := middleware.AuthRequired(d.Auth, d.Sessions)
	api := app.Group("/api")

	handlers.NewAuthHandler(d.Auth, d.OAuth, d.Sessions).RegisterRoutes(api, auth)
	handlers.NewProjectHandler(d.Projects, d.Likes).RegisterRoutes(api, auth)
	handlers.NewStatsHandler(d.Stats).RegisterRoutes(api, auth)
	handlers.NewUploadHandler(d.Uploads, d.UploadMaxBytes).RegisterRoutes(api, auth)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
