package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qaforum/api/internal/apperr"
)

const internalErrorCode = "INTERNAL_ERROR"

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AbortWithError writes err as {"code","message"} and stops the chain.
// Unclassified errors are logged and reported without detail.
func AbortWithError(c *gin.Context, log zerolog.Logger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(apperr.HTTPStatus(err), errorResponse{Code: appErr.Code, Message: appErr.Message})
		return
	}

	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.Writer.Header().Get(requestIDHeader)).
		Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		Code:    internalErrorCode,
		Message: "internal server error",
	})
}
