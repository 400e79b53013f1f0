// Package api provides the HTTP and websocket surface of the application.
//
// Handlers report failures through ErrorResponse so that every error leaves
// the server with the same shape, a correlation id and a server-side log
// entry. Avoid direct c.JSON calls with error payloads.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse returns a standardized success response.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse returns a standardized created response.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// NoContentResponse returns an empty success response.
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
