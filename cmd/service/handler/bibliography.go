package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/knowscan-ai/knowscan/app/logic/v1"
	"github.com/knowscan-ai/knowscan/app/response"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

type GenerateBibliographiesRequest struct {
	DocumentIDs []string `json:"documents" form:"documents" binding:"required"`
}

func (s *HttpSrv) GenerateBibliographies(c *gin.Context) {
	var req GenerateBibliographiesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	results, err := v1.NewBibliographyLogic(c, s.Core).GenerateBibliographies(req.DocumentIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, results)
}
