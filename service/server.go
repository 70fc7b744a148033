package service

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/jdginn/go-mirror-room/room/config"
)

// Logger is the request log middleware.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// NewApp wires the room API on top of an initialised store.
func NewApp(cfg *config.Config, store *Store) *fiber.App {
	sessions := NewSessionManager(store, cfg.Simulation.TraceParams())
	rooms := NewRoomHandler(sessions, store, RenderOptions{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Margin: cfg.Render.Margin,
		Style:  cfg.Render.Style(),
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AppName:      "Mirror Room",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// ============================================================
	// Room Routes
	// ============================================================

	app.Get("/rooms", rooms.List)
	app.Post("/rooms", rooms.Create)
	app.Get("/rooms/:id", rooms.Get)
	app.Delete("/rooms/:id", rooms.Delete)
	app.Post("/rooms/:id/clear", rooms.Clear)

	app.Post("/rooms/:id/walls", rooms.AddWall)
	app.Put("/rooms/:id/points/:index", rooms.MovePoint)
	app.Put("/rooms/:id/walls/:index/type", rooms.ChangeWallType)
	app.Post("/rooms/:id/walls/:index/orient", rooms.ToggleOrient)
	app.Post("/rooms/:id/walls/:index/size", rooms.ToggleArcSize)
	app.Put("/rooms/:id/walls/:index/radius", rooms.SetRadiusCoef)

	app.Post("/rooms/:id/ray", rooms.AddRay)
	app.Put("/rooms/:id/ray/angle", rooms.SetRayAngle)
	app.Post("/rooms/:id/ray/inverse", rooms.InverseRay)
	app.Delete("/rooms/:id/ray", rooms.RemoveRay)

	app.Post("/rooms/:id/aim", rooms.AddAim)
	app.Delete("/rooms/:id/aim", rooms.RemoveAim)

	app.Get("/rooms/:id/segments", rooms.Segments)
	app.Get("/rooms/:id/render.png", rooms.RenderPNG)

	return app
}
