// Package response builds the JSON envelope every endpoint replies with.
package response

import (
	"errors"

	"github.com/abhisek/kotoba/internal/api/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func NewInternalServerError() *Response {
	return &Response{
		Success:    false,
		Message:    "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
}

// NewFailed builds an error reply. The status comes from a *fiber.Error,
// is 400 for validation failures and 500 otherwise.
func NewFailed(msg string, err error, logger *logrus.Logger) *Response {
	res := &Response{
		Success:    false,
		Message:    msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	var fe *fiber.Error
	var fields *validate.FieldsError
	switch {
	case errors.As(err, &fe):
		res.StatusCode = fe.Code
		if fe.Message != "" {
			res.Error = fe.Message
		}
	case errors.As(err, &fields):
		res.StatusCode = fiber.StatusBadRequest
		res.Error = fields.Fields
	}

	if logger != nil && res.StatusCode >= fiber.StatusInternalServerError {
		logger.Error(err)
	}
	return res
}

func NewSuccess(msg string, data any) *Response {
	return &Response{
		Success:    true,
		Message:    msg,
		StatusCode: fiber.StatusOK,
		Data:       data,
	}
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r)
}
