package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

const ResponseKey = "response_key"

type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

type Meta struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// NewResponse seeds every request with a response envelope carrying a fresh
// request id.
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := &Response{
			Meta: Meta{
				RequestID: utils.GenSpecID(),
			},
		}
		c.Set(ResponseKey, resp)
	}
}

func APIError(c *gin.Context, err error) {
	c.Abort()

	res := c.MustGet(ResponseKey).(*Response)
	if ce, ok := err.(*errors.CustomizedError); ok {
		res.Meta.Code = ce.GetCode()
		res.Meta.Message = ce.Message()
	} else {
		res.Meta.Code = http.StatusInternalServerError
		res.Meta.Message = err.Error()
	}

	c.JSON(res.Meta.Code, res)
	printErrorLog(c, res, err)
}

func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	res := c.MustGet(ResponseKey).(*Response)
	if response != nil {
		res.Data = response
	}
	c.JSON(http.StatusOK, res)
	printSuccessLog(c, res)
}

func printErrorLog(c *gin.Context, res *Response, err error) {
	slog.Error("response error",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Int("code", res.Meta.Code),
		slog.String("request_id", res.Meta.RequestID),
		slog.String("error", err.Error()),
	)
}

func printSuccessLog(c *gin.Context, res *Response) {
	slog.Info("request success",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("request_id", res.Meta.RequestID),
	)
}
