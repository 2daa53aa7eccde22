package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/adrianliechti/speechbridge/pkg/auth"
	"github.com/adrianliechti/speechbridge/pkg/metrics"
	"github.com/adrianliechti/speechbridge/pkg/provider"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string
	Origins []string

	Authorizers []auth.Provider

	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	synthesizer map[string]provider.Synthesizer
}

// Parse reads the YAML config at path. An empty path yields the defaults:
// a single Fish Audio synthesizer and permissive CORS.
func Parse(path string) (*Config, error) {
	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		Address: ":8080",
		Origins: []string{"*"},

		Metrics:  metrics.New(),
		Registry: prometheus.NewRegistry(),
	}

	c.Metrics.Register(c.Registry)

	if file.Address != "" {
		c.Address = file.Address
	}

	if len(file.CORS.Origins) > 0 {
		c.Origins = file.CORS.Origins
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerSynthesizers(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	CORS corsConfig `yaml:"cors"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Synthesizers []synthesizerConfig `yaml:"synthesizers"`
}

type corsConfig struct {
	Origins []string `yaml:"origins"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	// an empty document decodes to io.EOF
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &config, nil
}
