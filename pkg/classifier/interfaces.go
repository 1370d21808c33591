package classifier

import "context"

// TextCompleter sends a system instruction and a user prompt to a generative model
type TextCompleter interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Extractor pulls plain text out of a supporting document. It returns "" on failure.
type Extractor interface {
	Extract(path string) string
}
