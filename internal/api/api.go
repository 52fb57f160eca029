// Package api serves the application state over HTTP for a browser front
// end. Every reply uses the response envelope.
package api

import (
	"errors"

	"github.com/abhisek/kotoba/internal/api/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const appName = "kotoba"

// NewAPI creates the fiber app with the envelope error handler.
func NewAPI(config *viper.Viper, log *logrus.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: config.GetBool("api.quiet"),
	})
}

func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error(err)
			return response.NewInternalServerError().Send(ctx)
		}
		return response.NewFailed(err.Error(), fiber.NewError(code, ""), log).Send(ctx)
	}
}
