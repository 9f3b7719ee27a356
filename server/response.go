package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/chronogate/chronogate/errors"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and envelope are derived from its code; anything else becomes a 500 with a
// server_error envelope. Every non-2xx response carries a well-formed
// envelope.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToEnvelope())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.ServerError(err).ToEnvelope())
}

// RespondOK sends a 200 response with the payload as-is. The wire contract
// uses flat bodies; success responses never carry an error field.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
