package response

import (
	"sahayak/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

// FromError renders err using its apperror kind. Unclassified errors are
// attached to the gin context so the request logger records them.
func FromError(c *gin.Context, err error) {
	if apperror.IsInternal(err) {
		_ = c.Error(err)
	}
	Error(c, apperror.HTTPStatus(err), apperror.Code(err), apperror.Message(err))
}

// BadRequest is used for bodies that fail to bind.
func BadRequest(c *gin.Context, err error) {
	ErrorWithDetails(c, 400, "INVALID_ARGUMENT", "Invalid request body", err.Error())
}

// Validation renders field -> failed rule pairs from the shared validator.
func Validation(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, 400, "INVALID_ARGUMENT", "Validation failed", fields)
}
