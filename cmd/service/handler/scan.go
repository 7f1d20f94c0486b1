package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/knowscan-ai/knowscan/app/logic/v1"
	"github.com/knowscan-ai/knowscan/app/response"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

type GenerateKnowledgeScanRequest struct {
	Query       string   `json:"query" form:"query" binding:"required"`
	DocumentIDs []string `json:"documents" form:"documents" binding:"required"`
}

func (s *HttpSrv) GenerateKnowledgeScan(c *gin.Context) {
	var req GenerateKnowledgeScanRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	scan, err := v1.NewScanLogic(c, s.Core).GenerateKnowledgeScan(req.Query, req.DocumentIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, scan)
}

func (s *HttpSrv) GetKnowledgeScan(c *gin.Context) {
	scanID, _ := c.Params.Get("scanid")

	scan, err := v1.NewScanLogic(c, s.Core).GetScan(scanID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, scan)
}
