package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/knowscan-ai/knowscan/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
