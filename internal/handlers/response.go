package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps err onto the error envelope via apierr.From. 304 goes
// out bodiless since clients must not receive content with Not Modified.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae.Status == http.StatusNotModified {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(ae.Status, ErrorEnvelope{
		Error: APIError{
			Message: ae.Error(),
			Code:    ae.Code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
