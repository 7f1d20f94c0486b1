package service

import (
	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/response"
	"github.com/knowscan-ai/knowscan/cmd/service/handler"
	"github.com/knowscan-ai/knowscan/cmd/service/middleware"
	"github.com/knowscan-ai/knowscan/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(response.NewResponse())
	s.Engine.Use(middleware.Cors)

	s.Engine.GET("/metrics", metrics.Export())

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(middleware.Observe(s.Core))
	{
		apiV1.POST("/ingest", s.IngestDocument)
		apiV1.GET("/document/chunks", s.ListDocumentChunks)

		scan := apiV1.Group("/scan")
		{
			scan.POST("", s.GenerateKnowledgeScan)
			scan.GET("/:scanid", s.GetKnowledgeScan)
			scan.POST("/:scanid/report", s.GenerateReport)
		}

		apiV1.POST("/bibliography", s.GenerateBibliographies)
	}
}
