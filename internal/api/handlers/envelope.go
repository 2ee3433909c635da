package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

// Envelope is the response shape of every /api endpoint. Success carries
// data, failure carries the error message; clients branch on the flag alone.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, logger *logging.Logger, appErr *errors.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(appErr).Error("Request failed",
			"code", appErr.Code,
			"path", c.Request.URL.Path,
		)
	} else {
		logger.WithContext(c.Request.Context()).Warn("Request rejected",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.HTTPStatus, Envelope{
		Success: false,
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}
