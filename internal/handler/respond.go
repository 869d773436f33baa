package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/pkg/apperror"
	"backend/pkg/response"
)

// respondError maps a service error to the HTTP boundary exactly once.
// Unexpected failures are logged server-side and surfaced generically.
func respondError(c *gin.Context, err error) {
	status := apperror.MapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, response.Error(status, apperror.ClientMessage(err)))
}
