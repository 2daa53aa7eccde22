package provider

import (
	"context"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, input string, options *SynthesizeOptions) (*Synthesis, error)
}

type SynthesizeOptions struct {
	Model string
	Voice string

	Format string

	// Token overrides the configured credential for a single call.
	Token string
}

type Synthesis struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
