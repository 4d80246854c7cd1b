package response

import (
	"vidtube-backend/pkg/apierror"

	"github.com/gin-gonic/gin"
)

// Envelope is the success body shape shared by every endpoint.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func Err(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	c.JSON(apiErr.Code, errorEnvelope{
		StatusCode: apiErr.Code,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     apiErr.Errs,
	})
}
