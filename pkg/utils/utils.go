package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/knowscan-ai/knowscan/pkg/errors"
)

// GenSpecID returns a fresh unique id for a record, scan or report.
func GenSpecID() string {
	return uuid.NewString()
}

func BindArgsWithGin(c *gin.Context, req interface{}) error {
	err := c.ShouldBindWith(req, binding.Default(c.Request.Method, c.ContentType()))
	if err != nil {
		return errors.New(fmt.Sprintf("Gin.ShouldBindWith.%s.%s", c.Request.Method, c.Request.URL.Path), "invalid request arguments", err).Code(http.StatusBadRequest)
	}
	return nil
}
