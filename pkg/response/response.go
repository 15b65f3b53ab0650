package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/pkg/apperror"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, status int, payload any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, payload)
}

// Error writes an error body and aborts the chain.
func Error(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: c.GetString("request_id"),
	})
}

// Fail renders err through its apperror kind. Internal causes are logged and
// replaced with a generic message.
func Fail(c *gin.Context, logger *logrus.Logger, err error) {
	ae := apperror.From(err)
	status := apperror.Status(ae.Kind)

	if ae.Kind == apperror.KindInternal {
		if logger != nil {
			logger.WithError(err).
				WithField("request_id", c.GetString("request_id")).
				WithField("path", c.FullPath()).
				Error(ae.Message)
		}
		Error(c, status, "Internal server error", nil)
		return
	}
	if ae.Kind == apperror.KindMissingReference && logger != nil {
		logger.WithField("request_id", c.GetString("request_id")).Warn(ae.Message)
	}

	var details interface{}
	if len(ae.Details) > 0 {
		details = ae.Details
	}
	Error(c, status, ae.Message, details)
}
