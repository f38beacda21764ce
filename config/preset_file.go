package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joy-dx/presetreq/dto"
	"gopkg.in/yaml.v3"
)

// PresetDefinition is the declarative part of a preset. Functions (callbacks,
// prepare and transform stages) are attached in code.
type PresetDefinition struct {
	Name string `json:"name" yaml:"name"`
	// Parent name of an earlier preset, empty for a root preset
	Parent               string                    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Description          string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Headers              map[string]string         `json:"headers,omitempty" yaml:"headers,omitempty"`
	Status               map[string]dto.StatusRule `json:"-" yaml:"status,omitempty"`
	PrepareMergeStrategy string                    `json:"prepare_merge_strategy,omitempty" yaml:"prepare_merge_strategy,omitempty"`
	SendMergeStrategy    string                    `json:"send_merge_strategy,omitempty" yaml:"send_merge_strategy,omitempty"`
}

type PresetFile struct {
	Presets []PresetDefinition `json:"presets" yaml:"presets"`
}

// LoadPresetFile reads and validates a YAML preset file.
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes and validates YAML preset definitions. Unknown keys
// are rejected so typos in merge strategy names surface early.
func ParsePresets(data []byte) (*PresetFile, error) {
	var file PresetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks names are unique, parents are declared before children
// and merge strategies are known.
func (f *PresetFile) Validate() error {
	seen := make(map[string]struct{}, len(f.Presets))
	for i, p := range f.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset #%d: name is required", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("preset %q: duplicate name", p.Name)
		}
		if p.Parent != "" {
			if _, ok := seen[p.Parent]; !ok {
				return fmt.Errorf("preset %q: parent %q must be declared earlier", p.Name, p.Parent)
			}
		}
		if _, err := dto.ParseMergeStrategy(p.PrepareMergeStrategy); err != nil {
			return fmt.Errorf("preset %q: prepare_merge_strategy: %w", p.Name, err)
		}
		if _, err := dto.ParseMergeStrategy(p.SendMergeStrategy); err != nil {
			return fmt.Errorf("preset %q: send_merge_strategy: %w", p.Name, err)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
