// Package coordinator composes the Generator and Evaluator into the single
// end-to-end operation described in spec.md §4.7: for each ground-set size
// in a configured range, enumerate canonical families and, if a formula is
// configured, forward only the satisfying ones to the sink.
package coordinator

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/latticegen/semiframe/cache"
	"github.com/latticegen/semiframe/generate"
)

// Config is the value struct constructed once at startup, per spec.md §9
// ("Configuration is a value struct constructed once at startup").
type Config struct {
	Mode string `json:"mode" yaml:"mode"` // "semitopology" or "semiframe"
	MinN int    `json:"min_n" yaml:"min_n"`
	MaxN int    `json:"max_n" yaml:"max_n"`

	// Start is family text (§6 syntax) for the starting family at each n.
	// Empty means the default: the full set alone, per SPEC_FULL.md §3's
	// ∅-deferred convention.
	Start string `json:"start,omitempty" yaml:"start,omitempty"`

	Limit       int    `json:"limit,omitempty" yaml:"limit,omitempty"`
	CacheSize   int    `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
	CachePolicy string `json:"cache_policy,omitempty" yaml:"cache_policy,omitempty"` // "fifo" (default) or "lru"
	BatchSize   int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`

	// Output is a sink path template; "{n}" is replaced with the current
	// ground-set size. Empty means standard output.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Formula is proposition-language source (§4.4 syntax). Empty means
	// no filtering: every emitted family reaches the sink.
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`

	// VerifySAT cross-checks every formula evaluation against the
	// gini-backed circuit in eval.CrossCheck instead of Evaluator.Check
	// alone.
	VerifySAT bool `json:"verify_sat,omitempty" yaml:"verify_sat,omitempty"`
}

// LoadConfig reads and decodes a Config from a file. Files named *.yaml or
// *.yml decode as YAML (github.com/goccy/go-yaml, the same decoder the
// reference command tree uses for its own config values); every other
// extension decodes as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return decodeConfig(data, isYAMLPath(path))
}

// LoadConfigWithPatch is LoadConfig, followed by applying an RFC 6902 JSON
// Patch document (read from patchPath) to the base document before
// decoding — the `-patch` overlay described in SPEC_FULL.md §5, letting a
// caller express "same as base.json but with a higher limit" without
// templating. RFC 6902 patches operate on JSON, so a YAML base is rejected
// when a patch is supplied.
func LoadConfigWithPatch(basePath, patchPath string) (*Config, error) {
	base, err := os.ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", basePath, err)
	}
	yamlBase := isYAMLPath(basePath)
	if patchPath == "" {
		return decodeConfig(base, yamlBase)
	}
	if yamlBase {
		return nil, fmt.Errorf("%w: -patch requires a JSON base config, got %s", ErrInvalidConfig, basePath)
	}
	patchData, err := os.ReadFile(patchPath)
	if err != nil {
		return nil, fmt.Errorf("reading patch %s: %w", patchPath, err)
	}
	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return nil, fmt.Errorf("decoding patch %s: %w", patchPath, err)
	}
	patched, err := patch.Apply(base)
	if err != nil {
		return nil, fmt.Errorf("applying patch %s to %s: %w", patchPath, basePath, err)
	}
	return decodeConfig(patched, false)
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func decodeConfig(data []byte, asYAML bool) (*Config, error) {
	cfg := &Config{}
	if asYAML {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding config: %w", err)
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// mode resolves Config.Mode to a generate.Mode, defaulting to Semitopology
// when unset.
func (cfg *Config) mode() (generate.Mode, error) {
	switch cfg.Mode {
	case "", "semitopology":
		return generate.Semitopology, nil
	case "semiframe":
		return generate.Semiframe, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
}

// cachePolicy resolves Config.CachePolicy to a cache.Policy, defaulting to
// FIFO per spec.md §4.2.
func (cfg *Config) cachePolicy() (cache.Policy, error) {
	switch cfg.CachePolicy {
	case "", "fifo":
		return cache.FIFO, nil
	case "lru":
		return cache.LRU, nil
	default:
		return 0, fmt.Errorf("%w: unknown cache policy %q", ErrInvalidConfig, cfg.CachePolicy)
	}
}
