package llm

import (
	"fmt"

	"sheetdoc/internal/config"
	"sheetdoc/internal/port"
)

// ProviderFactory is a function that creates a Completer from the LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.Completer, error)

// registry of provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewCompleter validates the LLM config and constructs the selected
// provider's client. Validation failures and unknown provider selectors are
// fatal; no completer is constructed.
func NewCompleter(cfg *config.LLMConfig) (port.Completer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
