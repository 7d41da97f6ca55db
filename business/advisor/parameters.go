package advisor

import (
	"fmt"
	"os"
	"smelterAdvisor/domain"

	"gopkg.in/yaml.v3"
)

// parameterFile is the on-disk layout of PARAMETERS_FILE:
//
//	target_cu: 62.5
//	dead_band: 0.5
//	parameters:
//	  - name: "Overall blast volume, m3/h"
//	    coefficient: 0.002
//	    norm_min: 15000
//	    norm_max: 35000
//	    magnitude_scale: 50
type parameterFile struct {
	TargetCu       *float64         `yaml:"target_cu"`
	DeadBand       *float64         `yaml:"dead_band"`
	MaxAdjustments *int             `yaml:"max_adjustments"`
	Parameters     []parameterEntry `yaml:"parameters"`
}

type parameterEntry struct {
	Name           string   `yaml:"name"`
	Unit           string   `yaml:"unit"`
	Coefficient    float64  `yaml:"coefficient"`
	NormMin        *float64 `yaml:"norm_min"`
	NormMax        *float64 `yaml:"norm_max"`
	MagnitudeScale float64  `yaml:"magnitude_scale"`
	Enabled        *bool    `yaml:"enabled"`
}

// ApplyParametersFile overlays a YAML file on cfg. A non-empty parameter list replaces the table.
func ApplyParametersFile(cfg Config, path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read parameters file: %w", err)
	}

	var f parameterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return cfg, fmt.Errorf("decode parameters file: %w", err)
	}

	if f.TargetCu != nil {
		cfg.TargetCu = *f.TargetCu
	}
	if f.DeadBand != nil {
		cfg.DeadBand = *f.DeadBand
	}
	if f.MaxAdjustments != nil {
		cfg.MaxAdjustments = *f.MaxAdjustments
	}

	if len(f.Parameters) > 0 {
		params := make([]domain.ParameterConfig, 0, len(f.Parameters))
		for _, e := range f.Parameters {
			enabled := true
			if e.Enabled != nil {
				enabled = *e.Enabled
			}
			params = append(params, domain.ParameterConfig{
				Name:           e.Name,
				Unit:           e.Unit,
				Coefficient:    e.Coefficient,
				NormMin:        e.NormMin,
				NormMax:        e.NormMax,
				MagnitudeScale: e.MagnitudeScale,
				Enabled:        enabled,
			})
		}
		cfg.Parameters = params
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("parameters file %s: %w", path, err)
	}

	return cfg, nil
}
