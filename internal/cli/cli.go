// Package cli implements the pixfx command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
)

const (
	appName = "pixfx"

	// outputSuffix is appended to the input base name when no output path is given.
	outputSuffix = "-filtered.jpg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	catalog *pixfx.Catalog
}

// New creates a new CLI instance with the built-in transform catalog.
// The logger also receives the library's log records.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:  newLogger(w, level),
		catalog: filters.Builtin(),
	}
	installLibraryLogger(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pixfx applies per-pixel color transforms to images",
		Long:         `pixfx applies per-pixel channel transforms (channel isolation, grayscale, gradients and more) to images, from the command line, an interactive picker or over HTTP.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.listCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// defaultOutput derives the output path from the input path,
// e.g. "photos/cat.png" becomes "photos/cat-filtered.jpg".
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputSuffix
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
