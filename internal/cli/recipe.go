package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/soypat/pixfx/internal/imageio"
)

// Recipe is a batch job read from a TOML file:
//
//	input   = "cat.png"
//	output  = "cat-gray.png"
//	quality = 85
//	workers = 4
//	steps   = ["Max Value Only", "max-value-grayscale"]
//
// Relative paths are resolved against the recipe's directory.
type Recipe struct {
	Input   string   `toml:"input"`
	Output  string   `toml:"output"`
	Quality int      `toml:"quality"`
	Workers int      `toml:"workers"`
	GPU     bool     `toml:"gpu"`
	Steps   []string `toml:"steps"`
}

var errRecipeNoInput = errors.New("recipe: input is required")

// LoadRecipe reads and validates a recipe file. Unknown keys are rejected.
func LoadRecipe(path string) (*Recipe, error) {
	var r Recipe
	md, err := toml.DecodeFile(path, &r)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("recipe: unknown key %q", undecoded[0].String())
	}
	if r.Input == "" {
		return nil, errRecipeNoInput
	}
	if len(r.Steps) == 0 {
		return nil, fmt.Errorf("recipe: %w", errNoSteps)
	}
	dir := filepath.Dir(path)
	r.Input = relativeTo(dir, r.Input)
	if r.Output == "" {
		r.Output = defaultOutput(r.Input)
	} else {
		r.Output = relativeTo(dir, r.Output)
	}
	if r.Quality == 0 {
		r.Quality = imageio.DefaultQuality
	}
	if r.Workers <= 0 {
		r.Workers = defaultWorkers()
	}
	return &r, nil
}

func relativeTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (r *Recipe) applyOpts() applyOpts {
	return applyOpts{
		input:      r.Input,
		output:     r.Output,
		transforms: r.Steps,
		quality:    r.Quality,
		workers:    r.Workers,
		gpu:        r.GPU,
	}
}

// runCommand executes a recipe file.
func (c *CLI) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [recipe.toml]",
		Short: "Run a TOML transform recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := LoadRecipe(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("recipe loaded", "input", r.Input, "output", r.Output, "steps", len(r.Steps))
			return c.runApply(cmd.Context(), cmd.OutOrStdout(), r.applyOpts())
		},
	}
}
