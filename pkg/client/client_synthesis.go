package client

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/adrianliechti/speechbridge/pkg/synthesis"
)

type SynthesisService struct {
	Options []RequestOption
}

func NewSynthesisService(opts ...RequestOption) SynthesisService {
	return SynthesisService{
		Options: opts,
	}
}

type SynthesizeRequest = synthesis.Request
type SynthesisResult = synthesis.Result

func (r *SynthesisService) New(ctx context.Context, input SynthesizeRequest, opts ...RequestOption) (*SynthesisResult, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	var result SynthesisResult

	if err := cfg.post(ctx, "/tts_synthesize", input, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Audio decodes the audio of a successful result or turns the failure
// message into an error.
func Audio(result *SynthesisResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("empty result")
	}

	if !result.Success || result.AudioBase64 == nil {
		if result.Error != nil {
			return nil, errors.New(*result.Error)
		}

		return nil, errors.New("synthesis failed")
	}

	return base64.StdEncoding.DecodeString(*result.AudioBase64)
}
