package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/soypat/pixfx/internal/imageio"
)

// applyOpts holds the flags shared by the apply and run commands.
type applyOpts struct {
	input      string   // image to read
	output     string   // image to write, format chosen by extension
	transforms []string // catalog names applied in order
	quality    int      // JPEG quality 1..100
	workers    int      // CPU row band workers
	gpu        bool     // use the WebGPU backend
}

// applyCommand creates the apply command which runs a chain of transforms over one image.
func (c *CLI) applyCommand() *cobra.Command {
	opts := applyOpts{
		quality: imageio.DefaultQuality,
		workers: defaultWorkers(),
	}
	cmd := &cobra.Command{
		Use:   "apply [image]",
		Short: "Apply transforms to an image",
		Long: `Apply one or more transforms, in the order given, to an image and save the result.

Names are matched ignoring case, dashes and underscores, so "red-only" selects "Red Only".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return c.runApply(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.transforms, "transform", "t", nil, "transform to apply (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <image>-filtered.jpg)")
	cmd.Flags().IntVarP(&opts.quality, "quality", "q", opts.quality, "JPEG quality (1-100)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "parallel row workers")
	cmd.Flags().BoolVar(&opts.gpu, "gpu", false, "run transforms on the GPU")
	_ = cmd.MarkFlagRequired("transform")
	return cmd
}

// runApply loads, transforms and saves one image. Transform names are
// resolved before the image is read so a typo fails fast.
func (c *CLI) runApply(ctx context.Context, w io.Writer, opts applyOpts) error {
	if opts.output == "" {
		opts.output = defaultOutput(opts.input)
	}
	p, err := newPipeline(c.catalog, opts.workers, opts.gpu, c.Logger)
	if err != nil {
		return err
	}
	defer p.Close()
	if _, err := p.resolve(opts.transforms); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	buf, err := imageio.Load(opts.input)
	if err != nil {
		return err
	}
	prog.done("Loaded "+opts.input, "width", buf.Width(), "height", buf.Height())

	if err := p.run(buf, opts.transforms); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := imageio.Save(opts.output, buf, opts.quality); err != nil {
		return err
	}
	printSuccess(w, "Applied %d transform(s)", len(opts.transforms))
	printFile(w, opts.output)
	return nil
}
