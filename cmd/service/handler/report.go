package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/knowscan-ai/knowscan/app/logic/v1"
	"github.com/knowscan-ai/knowscan/app/response"
)

func (s *HttpSrv) GenerateReport(c *gin.Context) {
	scanID, _ := c.Params.Get("scanid")

	result, err := v1.NewReportLogic(c, s.Core).GenerateReport(scanID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
