package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(config *viper.Viper, log *logrus.Logger) *Middleware {
	return &Middleware{Log: log, Config: config}
}

func (m *Middleware) CorsMiddleware() fiber.Handler {
	allowOrigins := "*"
	if m != nil && m.Config != nil {
		if v := m.Config.GetString("api.cors.origins"); v != "" {
			allowOrigins = v
		}
	}

	return cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Content-Length, Accept-Encoding",
		AllowMethods:  "GET, POST, PATCH, DELETE",
		AllowOrigins:  allowOrigins,
		ExposeHeaders: "Content-Length, Content-Type",
	})
}

// RequestLogger logs one line per request at debug level, and 5xx
// replies at error level.
func (m *Middleware) RequestLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		entry := m.Log.WithFields(logrus.Fields{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": ctx.Response().StatusCode(),
		})
		if ctx.Response().StatusCode() >= fiber.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request")
		}
		return err
	}
}
