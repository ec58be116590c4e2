package api

import (
	"net/http"

	"github.com/AleXx313/shareit/internal/apperr"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses. Unexpected
// errors hide their internals behind a generic message.
func writeError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.KindInvalidOperation, apperr.KindInvalidRequest:
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
