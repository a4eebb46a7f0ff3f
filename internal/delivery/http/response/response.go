// Package response defines the wire shapes shared by handlers and the
// error handler. Successful operations return the resource JSON directly;
// acknowledgements and errors use the {"message": ...} envelope.
package response

import (
	"github.com/labstack/echo/v4"
)

// MessageResponse is the body used for acknowledgements and all errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message writes a {"message": ...} body with the given status code.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}
