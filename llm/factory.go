package llm

import "fmt"

// Provider selects a generation backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderSimulate  Provider = "simulate"
)

// FactoryConfig carries provider credentials and model selection.
type FactoryConfig struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Model    string
}

// New creates the configured client. An unset provider, or a provider
// without credentials, yields the simulator so the backend still answers.
func New(cfg FactoryConfig) (Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return NewSimulator(), nil
		}
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return NewSimulator(), nil
		}
		return NewAnthropic(cfg.APIKey, cfg.Model), nil
	case ProviderSimulate, "":
		return NewSimulator(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
