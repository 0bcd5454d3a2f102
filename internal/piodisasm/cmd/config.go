package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"piodisasm/internal/disasm"
	"piodisasm/internal/render"
)

const defaultName = "piodisasm_result"

// Config is the disassembler configuration. It can be loaded from a JSON
// file with --config; flags given on the command line take precedence.
type Config struct {
	Name            string `json:"name,omitempty" jsonschema:"title=Program Name,description=Name for the .program directive,default=piodisasm_result"`
	Sideset         int    `json:"sideset" jsonschema:"title=Side-set Width,description=Number of side-set bits (PINCTRL_SIDESET_COUNT),minimum=0,maximum=5"`
	SidesetOptional bool   `json:"sidesetOptional" jsonschema:"title=Side-set Optional,description=Add opt to the .side_set directive"`
	SidesetPindirs  bool   `json:"sidesetPindirs" jsonschema:"title=Side-set Pindirs,description=Add pindirs to the .side_set directive"`
	SidesetEnable   bool   `json:"sidesetEnable" jsonschema:"title=Side-set Enable,description=Whether the side-set enable bit (EXECCTRL_SIDE_EN) is set"`
	Debug           bool   `json:"debug" jsonschema:"title=Debug,description=Enable debug logging"`
}

// SidesetConfig returns the part of the configuration the decoder uses.
func (c Config) SidesetConfig() disasm.SidesetConfig {
	return disasm.SidesetConfig{Width: c.Sideset, EnablePin: c.SidesetEnable}
}

// Header returns the listing directives.
func (c Config) Header() render.Header {
	return render.Header{
		Name:     c.Name,
		Sideset:  c.Sideset,
		Optional: c.SidesetOptional,
		Pindirs:  c.SidesetPindirs,
	}
}

// loadConfig reads a JSON config file.
func loadConfig(path string) (Config, error) {
	cfg := Config{Name: defaultName}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	return cfg, nil
}

// resolveConfig merges the --config file, if any, with explicitly set
// flags and validates the side-set settings.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	cfg := Config{Name: defaultName}
	path, _ := flags.GetString("config")
	fromFile := path != ""
	if fromFile {
		loaded, err := loadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	// Without a config file the flag defaults apply; with one, only flags
	// the user actually typed override it.
	if !fromFile || flags.Changed("name") {
		cfg.Name, _ = flags.GetString("name")
	}
	if !fromFile || flags.Changed("sideset") {
		cfg.Sideset, _ = flags.GetInt("sideset")
	}
	if !fromFile || flags.Changed("sideset-optional") {
		cfg.SidesetOptional, _ = flags.GetBool("sideset-optional")
	}
	if !fromFile || flags.Changed("sideset-pindirs") {
		cfg.SidesetPindirs, _ = flags.GetBool("sideset-pindirs")
	}
	if !fromFile || flags.Changed("sideset-enable") {
		cfg.SidesetEnable, _ = flags.GetBool("sideset-enable")
	}
	if !fromFile || flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.SidesetConfig().Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
