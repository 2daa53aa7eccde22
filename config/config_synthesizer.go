package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/speechbridge/pkg/metrics"
	"github.com/adrianliechti/speechbridge/pkg/otel"
	"github.com/adrianliechti/speechbridge/pkg/provider"
	"github.com/adrianliechti/speechbridge/pkg/provider/fishaudio"
	"github.com/adrianliechti/speechbridge/pkg/synthesis"
)

type synthesizerConfig struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Proxy *proxyConfig `yaml:"proxy"`
}

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if s, ok := cfg.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) registerSynthesizers(f *configFile) error {
	synthesizers := f.Synthesizers

	if len(synthesizers) == 0 {
		synthesizers = []synthesizerConfig{
			{Type: "fish"},
		}
	}

	for _, s := range synthesizers {
		id := s.ID

		if id == "" {
			id = strings.ToLower(s.Type)
		}

		synthesizer, err := createSynthesizer(s)

		if err != nil {
			return err
		}

		model := s.Model

		if model == "" {
			model = synthesis.DefaultModel
		}

		synthesizer = metrics.NewSynthesizer(id, cfg.Metrics, synthesizer)
		synthesizer = otel.NewSynthesizer(strings.ToLower(s.Type), model, synthesizer)

		cfg.RegisterSynthesizer(id, synthesizer)
	}

	return nil
}

func createSynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "fish", "fishaudio", "fish-audio":
		return fishSynthesizer(cfg)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func fishSynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []fishaudio.Option

	if cfg.Token != "" {
		options = append(options, fishaudio.WithToken(cfg.Token))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, fishaudio.WithClient(client))
	}

	return fishaudio.NewSynthesizer(cfg.URL, cfg.Model, options...)
}
