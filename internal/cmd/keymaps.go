package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cflee/planck/internal/configpaths"
	"github.com/cflee/planck/keymap"
)

// KeymapCommand groups keymap-related subcommands.
type KeymapCommand struct {
	List   KeymapList   `cmd:"" help:"List the built-in keymaps"`
	Export KeymapExport `cmd:"" help:"Write a built-in keymap to a file as a starting point"`
}

// KeymapList prints the built-in keymap names.
type KeymapList struct{}

func (KeymapList) Run() error {
	for _, n := range keymap.BuiltinNames() {
		fmt.Println(n)
	}
	return nil
}

// KeymapExport writes a keymap in the chosen format.
type KeymapExport struct {
	Name   string `arg:"" optional:"" name:"keymap" help:"Built-in keymap name or keymap file" default:"cflee"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path, '-' for stdout (defaults to <keymap>.<format> under the config keymaps directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (k *KeymapExport) Run(logger *slog.Logger) error {
	cfg, err := loadKeymap(k.Name)
	if err != nil {
		return err
	}
	if k.Output == "-" {
		return keymap.Encode(os.Stdout, cfg, k.Format)
	}

	dest := k.Output
	if dest == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve keymap directory: %w", err)
		}
		dest = keymapPath(dir, cfg.Name, k.Format)
	}
	if err := writeNew(dest, k.Force, func(w io.Writer) error {
		return keymap.Encode(w, cfg, k.Format)
	}); err != nil {
		return err
	}
	logger.Info("wrote keymap", "keymap", cfg.Name, "path", dest)
	return nil
}

func loadKeymap(ref string) (*keymap.Config, error) {
	return keymap.Resolve(configpaths.FindKeymap(ref))
}

// writeNew creates dest and its directory, refusing to replace an existing
// file unless force is set.
func writeNew(dest string, force bool, write func(io.Writer) error) error {
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func keymapPath(dir, name, format string) string {
	ext := keymap.NormalizeFormat(format)
	if ext == "" {
		ext = "json"
	}
	return filepath.Join(dir, "keymaps", name+"."+ext)
}
