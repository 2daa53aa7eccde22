// Package synthesis translates a UI synthesis command into a single provider call
// and folds every outcome into a Result.
package synthesis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adrianliechti/speechbridge/pkg/provider"
)

const (
	DefaultModel  = "s1"
	DefaultFormat = "mp3"
)

type Request struct {
	Text string `json:"text"`

	APIKey      string `json:"api_key"`
	ReferenceID string `json:"reference_id"`

	Model  string `json:"model,omitempty"`
	Format string `json:"format,omitempty"`
}

var requiredFields = []string{"text", "api_key", "reference_id"}

// UnmarshalJSON rejects payloads without text, api_key or reference_id and
// applies the defaults for absent model and format only; an explicit empty
// string is kept as is.
func (r *Request) UnmarshalJSON(data []byte) error {
	type requestType Request

	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, name := range requiredFields {
		if val, ok := fields[name]; !ok || string(val) == "null" {
			return fmt.Errorf("missing field %q", name)
		}
	}

	req := requestType{
		Model:  DefaultModel,
		Format: DefaultFormat,
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}

	*r = Request(req)
	return nil
}

type Result struct {
	Success bool `json:"success"`

	AudioBase64 *string `json:"audio_base64"`
	Error       *string `json:"error"`
}

type Proxy struct {
	synthesizer provider.Synthesizer
}

func New(synthesizer provider.Synthesizer) *Proxy {
	return &Proxy{
		synthesizer: synthesizer,
	}
}

func (p *Proxy) Synthesize(ctx context.Context, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(fmt.Errorf("unexpected panic: %v", r))
		}
	}()

	options := &provider.SynthesizeOptions{
		Model: req.Model,
		Voice: req.ReferenceID,

		Format: req.Format,
		Token:  req.APIKey,
	}

	s, err := p.synthesizer.Synthesize(ctx, req.Text, options)

	if err != nil {
		return failure(err)
	}

	audio := base64.StdEncoding.EncodeToString(s.Content)

	return Result{
		Success:     true,
		AudioBase64: &audio,
	}
}

func failure(err error) Result {
	message := err.Error()

	var transporterr *provider.TransportError
	var apierr *provider.APIError
	var readerr *provider.ReadError

	if !errors.As(err, &transporterr) && !errors.As(err, &apierr) && !errors.As(err, &readerr) {
		message = (&provider.TransportError{Err: err}).Error()
	}

	return Result{
		Success: false,
		Error:   &message,
	}
}

func Greet(name string) string {
	return "Hello, " + name + "! You've been greeted from Rust!"
}
