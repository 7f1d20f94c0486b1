package srv

import (
	"fmt"
	"os"

	"github.com/knowscan-ai/knowscan/pkg/ai"
	"github.com/knowscan-ai/knowscan/pkg/ai/openai"
)

// AIConfig selects and configures the model collaborator. Retry and
// availability policy live with the endpoint, not here.
type AIConfig struct {
	Driver   string       `toml:"driver"`
	Token    string       `toml:"token"`
	Endpoint string       `toml:"endpoint"`
	Models   ai.ModelName `toml:"models"`
}

func (c *AIConfig) FromENV() {
	c.Driver = os.Getenv("KNOWSCAN_AI_DRIVER")
	c.Token = os.Getenv("KNOWSCAN_AI_TOKEN")
	c.Endpoint = os.Getenv("KNOWSCAN_AI_ENDPOINT")
	c.Models.ChatModel = os.Getenv("KNOWSCAN_AI_CHAT_MODEL")
	c.Models.EmbeddingModel = os.Getenv("KNOWSCAN_AI_EMBEDDING_MODEL")
}

type Srv struct {
	ai ai.Driver
}

func (s *Srv) AI() ai.Driver {
	return s.ai
}

func MustSetupSrvs(cfg AIConfig) *Srv {
	switch cfg.Driver {
	case openai.NAME, "":
		return &Srv{ai: openai.New(cfg.Token, cfg.Endpoint, cfg.Models)}
	default:
		panic(fmt.Sprintf("unknown ai driver %q", cfg.Driver))
	}
}
