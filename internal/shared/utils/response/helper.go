package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the standard envelope. Every handler, the rate limit
// middleware included, goes through here so clients parse one shape.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
