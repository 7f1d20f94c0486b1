package core

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/knowscan-ai/knowscan/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}
	conf.Scan.ApplyDefaults()

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.Scan.ApplyDefaults()
	return c
}

type CoreConfig struct {
	Addr          string              `toml:"addr"`
	Log           Log                 `toml:"log"`
	Postgres      PGConfig            `toml:"postgres"`
	ObjectStorage ObjectStorageDriver `toml:"object_storage"`
	AI            srv.AIConfig        `toml:"ai"`
	Scan          ScanConfig          `toml:"scan"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("KNOWSCAN_API_ADDR")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.ObjectStorage.FromENV()
	c.AI.FromENV()
	c.Scan.FromENV()
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("KNOWSCAN_LOG_LEVEL")
	l.Path = os.Getenv("KNOWSCAN_LOG_PATH")
}

func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("KNOWSCAN_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type ObjectStorageDriver struct {
	Driver string    `toml:"driver"`
	S3     *S3Config `toml:"s3"`
}

func (o *ObjectStorageDriver) FromENV() {
	o.Driver = "s3"
	o.S3 = &S3Config{
		Bucket:    os.Getenv("KNOWSCAN_S3_BUCKET"),
		Region:    os.Getenv("KNOWSCAN_S3_REGION"),
		Endpoint:  os.Getenv("KNOWSCAN_S3_ENDPOINT"),
		AccessKey: os.Getenv("KNOWSCAN_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("KNOWSCAN_S3_SECRET_KEY"),
	}
}

type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// ScanConfig tunes the chunking and aggregation pipeline.
type ScanConfig struct {
	// ChunkSize is the page window a document is split with. The first-chunk
	// bibliography lookup depends on it staying consistent across a corpus.
	ChunkSize             int    `toml:"chunk_size"`
	EnrichConcurrency     int    `toml:"enrich_concurrency"`
	AggregateConcurrency  int    `toml:"aggregate_concurrency"`
	BibliographyPrefixLen int    `toml:"bibliography_prefix_len"`
	MaxPromptTokens       int    `toml:"max_prompt_tokens"`
	SummaryPromptTemplate string `toml:"summary_prompt_template"`
}

func (c *ScanConfig) FromENV() {
	c.ChunkSize, _ = strconv.Atoi(os.Getenv("KNOWSCAN_SCAN_CHUNK_SIZE"))
	c.EnrichConcurrency, _ = strconv.Atoi(os.Getenv("KNOWSCAN_SCAN_ENRICH_CONCURRENCY"))
	c.AggregateConcurrency, _ = strconv.Atoi(os.Getenv("KNOWSCAN_SCAN_AGGREGATE_CONCURRENCY"))
	c.BibliographyPrefixLen, _ = strconv.Atoi(os.Getenv("KNOWSCAN_SCAN_BIBLIOGRAPHY_PREFIX_LEN"))
	c.MaxPromptTokens, _ = strconv.Atoi(os.Getenv("KNOWSCAN_SCAN_MAX_PROMPT_TOKENS"))
	c.SummaryPromptTemplate = os.Getenv("KNOWSCAN_SCAN_SUMMARY_PROMPT_TEMPLATE")
}

func (c *ScanConfig) ApplyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 10
	}
	if c.EnrichConcurrency <= 0 {
		c.EnrichConcurrency = 3
	}
	if c.AggregateConcurrency <= 0 {
		c.AggregateConcurrency = 3
	}
	if c.BibliographyPrefixLen <= 0 {
		c.BibliographyPrefixLen = 1000
	}
	if c.MaxPromptTokens <= 0 {
		c.MaxPromptTokens = 12000
	}
}
