package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, common.ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": {"kind", "message"}}. Messages of
// internal failures are not exposed.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorBody{Kind: common.Kind(err), Message: err.Error()}

	l := loggerFrom(c)
	if status == http.StatusInternalServerError {
		l.Error(c.Request.Context(), "request failed", "error", err.Error())
		body.Message = "internal error"
	} else {
		l.Debug(c.Request.Context(), "request rejected", "kind", body.Kind, "error", err.Error())
	}

	c.AbortWithStatusJSON(status, errorView{Error: body})
}

// bindError turns a gin binding failure into a validation error.
func bindError(err error) error {
	return common.Validationf("%v", err)
}
