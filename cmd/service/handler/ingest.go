package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/knowscan-ai/knowscan/app/logic/v1"
	"github.com/knowscan-ai/knowscan/app/response"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

type IngestDocumentRequest struct {
	ObjectPath string `json:"object_path" form:"object_path" binding:"required"`
	FileName   string `json:"file_name" form:"file_name" binding:"required"`
}

func (s *HttpSrv) IngestDocument(c *gin.Context) {
	var req IngestDocumentRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewIngestLogic(c, s.Core).IngestDocument(req.ObjectPath, req.FileName)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type ListDocumentChunksRequest struct {
	FileName string `json:"file_name" form:"file_name" binding:"required"`
}

func (s *HttpSrv) ListDocumentChunks(c *gin.Context) {
	var req ListDocumentChunksRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	records, err := v1.NewIngestLogic(c, s.Core).ListDocumentChunks(req.FileName)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, records)
}
