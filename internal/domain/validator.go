package domain

import (
	"errors"
	"fmt"
	"slices"
)

type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

func (v *ConfigValidator) Validate(cfg *RunConfig) error {
	if cfg.ScriptPath == "" {
		return errors.New("no provided script path")
	}

	if !slices.Contains([]OutputFormat{FormatTUI, FormatJSON, FormatRaw}, cfg.Format) {
		return fmt.Errorf("unknown output format %q (tui|json|raw)", cfg.Format)
	}

	if !slices.Contains([]VerbosityLevel{VerbositySilent, VerbosityNormal, VerbosityVerbose}, cfg.Verbosity) {
		return fmt.Errorf("unknown verbosity %q (silent|normal|verbose)", cfg.Verbosity)
	}

	if cfg.ItemTimeout < 0 {
		return errors.New("item timeout cannot be negative")
	}

	return nil
}

type ScriptValidator struct{}

func NewScriptValidator() *ScriptValidator {
	return &ScriptValidator{}
}

// Validate checks the policy tag and that every item names a program.
// An empty list is valid.
func (v *ScriptValidator) Validate(list List) error {
	if !list.Kind.Valid() {
		return fmt.Errorf("%w: unknown list kind %q", ErrInvalidScript, list.Kind)
	}

	for i, item := range list.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d has an empty name", ErrInvalidScript, i+1)
		}
	}

	return nil
}
