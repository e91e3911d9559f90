package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondTypedError maps the error taxonomy to HTTP statuses:
// ValidationError -> 400, NotFoundError -> 404, anything else -> 500.
func RespondTypedError(c *gin.Context, err error) {
	var vErr *ValidationError
	var nfErr *NotFoundError
	switch {
	case errors.As(err, &vErr):
		RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &nfErr):
		RespondError(c, http.StatusNotFound, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
