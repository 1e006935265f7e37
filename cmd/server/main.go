package main

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/Saschadav/neonhideseek/internal/config"
	"github.com/Saschadav/neonhideseek/internal/game"
	"github.com/Saschadav/neonhideseek/internal/logging"
	"github.com/Saschadav/neonhideseek/internal/transport/ws"
)

func main() {
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	hub := game.NewHub(game.Config{
		DefaultCapacity: cfg.RoomCapacity,
		RoundSeconds:    cfg.RoundSeconds,
		ResetDelay:      time.Duration(cfg.ResetDelaySeconds) * time.Second,
	}, log.Logger)
	go hub.Run()
	defer hub.Stop()

	app := fiber.New()
	app.Use(cors.New())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		ws.Serve(hub, c)
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Static("/", cfg.ClientDir, fiber.Static{
		MaxAge: 3600,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
