package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/knowscan-ai/knowscan/app/core/srv"
	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/app/store/sqlstore"
	s3Storage "github.com/knowscan-ai/knowscan/pkg/object-storage/s3"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores        store.Store
	objectStorage *s3Storage.S3
	httpClient    *http.Client
	httpEngine    *gin.Engine

	metrics *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		metrics:    NewMetrics("knowscan", "core"),
		httpEngine: gin.New(),
		stores:     sqlstore.MustSetup(cfg.Postgres),
		srv:        srv.MustSetupSrvs(cfg.AI),
	}

	if s3cfg := cfg.ObjectStorage.S3; s3cfg != nil {
		core.objectStorage = s3Storage.NewS3Client(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, s3cfg.AccessKey, s3cfg.SecretKey)
	}

	return core
}

func (c *Core) Cfg() CoreConfig {
	return c.cfg
}

func (c *Core) Store() store.Store {
	return c.stores
}

func (c *Core) Srv() *srv.Srv {
	return c.srv
}

func (c *Core) ObjectStorage() *s3Storage.S3 {
	return c.objectStorage
}

func (c *Core) HttpEngine() *gin.Engine {
	return c.httpEngine
}

func (c *Core) HttpClient() *http.Client {
	return c.httpClient
}

func (c *Core) Metrics() *Metrics {
	return c.metrics
}
