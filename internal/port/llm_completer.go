package port

import "context"

// Completer abstracts a single-turn LLM completion call behind one contract
// regardless of which provider backs it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
