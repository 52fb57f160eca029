package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api        *fiber.App
	Middleware *Middleware
	Handler    Handler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(c.Middleware.RequestLogger())
	c.Api.Use(c.Middleware.CorsMiddleware())

	h := c.Handler
	router := c.Api.Group("/api")
	{
		router.Get("/state", h.GetState)
		router.Get("/history/stats", h.GetStats)
		router.Get("/vocab", h.ListVocab)
		router.Post("/favorites/:id", h.ToggleFavorite)
		router.Get("/particles", h.ListParticles)
		router.Patch("/settings", h.SaveSettings)
		router.Get("/backup", h.ExportBackup)
		router.Post("/backup", h.ImportBackup)
		router.Delete("/progress", h.ResetProgress)
		router.Post("/llm/check-key", h.CheckKey)
	}

	sessionRouter := router.Group("/session")
	{
		sessionRouter.Post("/", h.StartSession)
		sessionRouter.Post("/answer", h.SubmitAnswer)
		sessionRouter.Post("/advance", h.Advance)
		sessionRouter.Post("/end", h.EndSession)
		sessionRouter.Post("/retry", h.RetryWrong)
		sessionRouter.Get("/result", h.GetResult)
	}
}
