package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default game config",
	Long: `Print the built-in virus.yaml. With --write, save it to
~/.pillbox/configs/virus.yaml, where pillbox picks it up automatically.

Examples:
  pillbox config > my-virus.yaml
  pillbox config --write`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the default config to the user config directory")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing user config")
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.GetDefaultYAML("virus")

	if !flagConfigWrite {
		os.Stdout.Write(data)
		return
	}

	path := config.UserConfigPath("virus.yaml")
	if path == "" {
		exitf("cannot determine home directory")
	}
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		exitf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		exitf("creating config directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		exitf("writing config: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
