package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"sigs.k8s.io/yaml"

	"sysprobe/internal/config/domain"
	probesapp "sysprobe/internal/probes/application"
	sharedlogger "sysprobe/internal/shared/logger"
	"sysprobe/internal/shared/validation"
)

// ProbeLoader applies the probe list of an instance
type ProbeLoader interface {
	LoadProbes(ctx context.Context, instance string, rawConfigs []json.RawMessage) (probesapp.ConfigDiff, error)
	Stop(ctx context.Context) error
}

// Loader handles configuration loading and translation to probe operations
type Loader struct {
	logger       sharedlogger.Logger
	probeService ProbeLoader

	mu        sync.RWMutex
	rawConfig []byte
}

// NewLoader creates a new configuration loader
func NewLoader(logger sharedlogger.Logger, probeService ProbeLoader) *Loader {
	return &Loader{
		logger:       logger,
		probeService: probeService,
	}
}

// ParseConfig decodes a YAML or JSON instance configuration and validates
// its top level. It returns the configuration converted to JSON.
func ParseConfig(rawConfig []byte) (domain.InstanceConfig, []byte, error) {
	var cfg domain.InstanceConfig

	jsonConfig, err := yaml.YAMLToJSON(rawConfig)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	err = json.Unmarshal(jsonConfig, &cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	problems := cfg.Valid(context.TODO())
	if len(problems) > 0 {
		return cfg, nil, validation.NewValidationError(problems, cfg.Name)
	}

	return cfg, jsonConfig, nil
}

// ReadConfigFile reads a configuration file. An empty path selects the
// embedded default configuration.
func ReadConfigFile(path string) ([]byte, error) {
	if path == "" {
		return domain.DefaultConfig, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return raw, nil
}

// LoadConfig loads and applies configuration from raw YAML or JSON bytes
func (l *Loader) LoadConfig(ctx context.Context, rawConfig []byte) error {
	cfg, jsonConfig, err := ParseConfig(rawConfig)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	diff, err := l.probeService.LoadProbes(ctx, cfg.Name, cfg.Probes)
	var valErr validation.ConfigError
	if errors.As(err, &valErr) {
		return err
	} else if err != nil {
		return fmt.Errorf("failed to load probes for %s: %w", cfg.Name, err)
	}

	l.rawConfig = jsonConfig
	l.logger.Debug("Configuration applied",
		"instance", cfg.Name,
		"added", diff.Add,
		"restarted", diff.Update,
		"removed", diff.Delete,
	)
	return nil
}

// LoadFile reads path (or the embedded default) and applies it
func (l *Loader) LoadFile(ctx context.Context, path string) error {
	raw, err := ReadConfigFile(path)
	if err != nil {
		return err
	}
	return l.LoadConfig(ctx, raw)
}

// GetConfig returns the last applied configuration as JSON, or nil
func (l *Loader) GetConfig() []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rawConfig
}

// Stop stops all probes
func (l *Loader) Stop(ctx context.Context) error {
	return l.probeService.Stop(ctx)
}
