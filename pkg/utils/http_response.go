package utils

import (
	"github.com/gin-gonic/gin"
)

// MessageResponse is the body shape for every error and for plain-message
// successes: { "message": "..." }.
type MessageResponse struct {
	Message string `json:"message"`
}

func ResponseWithError(
	c *gin.Context,
	statusCode int,
	message string,
) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

func ResponseWithMessage(
	c *gin.Context,
	statusCode int,
	message string,
) {
	c.JSON(statusCode, MessageResponse{Message: message})
}
