package fishaudio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/speechbridge/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	if url == "" {
		url = "https://api.fish.audio"
	}

	if model == "" {
		model = "s1"
	}

	cfg := &Config{
		url:   url,
		model: model,

		client: http.DefaultClient,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	model := s.model

	if options.Model != "" {
		model = options.Model
	}

	token := s.token

	if options.Token != "" {
		token = options.Token
	}

	format := options.Format

	// the model is not part of the request body
	body := map[string]any{
		"text":         content,
		"reference_id": options.Voice,
		"format":       format,
	}

	u, err := url.JoinPath(s.url, "/v1/tts")

	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, u, jsonReader(body))

	if err != nil {
		return nil, err
	}

	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(r)

	if err != nil {
		return nil, &provider.TransportError{Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, &provider.ReadError{Err: err}
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: model,

		Content:     data,
		ContentType: contentType(format),
	}, nil
}

func contentType(format string) string {
	switch strings.ToLower(format) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "opus":
		return "audio/ogg"
	case "pcm":
		return "audio/pcm"
	}

	return "application/octet-stream"
}

func jsonReader(v any) io.Reader {
	b := new(bytes.Buffer)

	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
	return b
}

func convertError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)

	if err != nil {
		data = nil
	}

	return &provider.APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,

		Body: string(data),
	}
}
