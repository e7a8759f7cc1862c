package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "REVSENT_"
	envConfigFile = "REVSENT_CONFIG"

	listSeparator = ","
	// samples are free text and may contain commas.
	samplesSeparator = "|"
)

// listKeys are split into slices when read from the environment.
var listKeys = map[string]string{ //nolint:gochecknoglobals // fixed key table
	"models":         listSeparator,
	"tuning_kernels": listSeparator,
	"tuning_c":       listSeparator,
	"samples":        samplesSeparator,
	"sample_labels":  listSeparator,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if REVSENT_CONFIG is set
//  3. env (prefix REVSENT_)
//
// List values given as strings are split on commas, except samples which are
// split on "|". A list set by a higher layer replaces the lower one.
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// REVSENT_TEST_FRACTION -> test_fraction (flat keys, underscores kept).
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if sep, ok := listKeys[key]; ok {
			return key, splitList(value, sep)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(listSeparator),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize trims list entries so "svm, tree" and "svm,tree" are equal.
func (c *Config) normalize() {
	c.Models = trimAll(c.Models, true)
	c.TuningKernels = trimAll(c.TuningKernels, true)
	c.Samples = trimAll(c.Samples, false)
	c.SampleLabels = trimAll(c.SampleLabels, false)
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func splitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	return strings.Split(value, sep)
}

func trimAll(in []string, lower bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if lower {
			s = strings.ToLower(s)
		}
		out = append(out, s)
	}
	return out
}
