package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Preset is one named scenario in the presets file. Zero-valued fields leave
// the corresponding flag default untouched.
type Preset struct {
	Title   string `yaml:"title"`
	Variant string `yaml:"variant"`
	M       int    `yaml:"m"`
	N       int    `yaml:"n"`
	K       int    `yaml:"k"`
	Block1  int    `yaml:"block1"`
	L1      int    `yaml:"l1"`
	Block2  int    `yaml:"block2"`
}

// PresetsConfig represents the full presets.yaml structure.
type PresetsConfig struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadPresets parses a presets file with strict field checking so typos cause
// errors instead of silently ignored keys.
func loadPresets(path string) (PresetsConfig, error) {
	var cfg PresetsConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading presets file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	return cfg, nil
}

// GetPreset loads the named preset from the presets file.
func GetPreset(path, name string) (Preset, error) {
	cfg, err := loadPresets(path)
	if err != nil {
		return Preset{}, err
	}
	p, ok := cfg.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q not found in %s", name, path)
	}
	return p, nil
}

// applyDefaults copies preset values into the flag variables, keeping any
// value the user set explicitly on the command line.
func (p Preset) applyDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	if p.Title != "" && !flags.Changed("title") {
		title = p.Title
	}
	if p.Variant != "" && !flags.Changed("variant") {
		variant = p.Variant
	}
	if p.M > 0 && !flags.Changed("rows") {
		dimM = p.M
	}
	if p.N > 0 && !flags.Changed("cols") {
		dimN = p.N
	}
	if p.K > 0 && !flags.Changed("inner") {
		dimK = p.K
	}
	if p.Block1 > 0 && !flags.Changed("block1") {
		block1 = p.Block1
	}
	if p.L1 > 0 && !flags.Changed("l1") {
		l1Size = p.L1
	}
	if p.Block2 > 0 && !flags.Changed("block2") {
		block2 = p.Block2
	}
}
