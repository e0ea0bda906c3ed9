package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/internal/imageio"
)

var (
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PickerModel - Interactive transform picker
// =============================================================================

// appliedMsg reports the completion of an apply, reload or export.
type appliedMsg struct {
	status string
	buf    *pixfx.Buffer // replaces the working image when non nil
	step   string        // appended to history when non empty
	reset  bool          // clears history
	err    error
}

// PickerModel is the bubbletea model for picking transforms from a grid.
// Each selection is applied cumulatively to the working image.
type PickerModel struct {
	Names   []string
	Cursor  int
	History []string
	Status  string
	Err     error

	input  string
	output string
	pipe   *pipeline
	buf    *pixfx.Buffer
	busy   bool
}

// NewPickerModel creates a picker over the catalog names working on buf.
func NewPickerModel(p *pipeline, buf *pixfx.Buffer, input, output string) PickerModel {
	return PickerModel{
		Names:  p.catalog.List(),
		input:  input,
		output: output,
		pipe:   p,
		buf:    buf,
		Status: fmt.Sprintf("%s %dx%d", input, buf.Width(), buf.Height()),
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
			}
		case "up", "k":
			if m.Cursor >= gridColumns {
				m.Cursor -= gridColumns
			}
		case "down", "j":
			if m.Cursor+gridColumns < len(m.Names) {
				m.Cursor += gridColumns
			}
		case "enter", " ":
			if m.busy || len(m.Names) == 0 {
				return m, nil
			}
			m.busy = true
			m.Status = "applying " + m.Names[m.Cursor] + "..."
			return m, m.applyCmd(m.Names[m.Cursor])
		case "r":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.Status = "reloading..."
			return m, m.reloadCmd()
		case "e":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.Status = "exporting..."
			return m, m.exportCmd()
		}
	case appliedMsg:
		m.busy = false
		m.Err = msg.err
		if msg.err != nil {
			m.Status = ""
			return m, nil
		}
		if msg.buf != nil {
			m.buf = msg.buf
		}
		if msg.reset {
			m.History = nil
		}
		if msg.step != "" {
			m.History = append(m.History, msg.step)
		}
		m.Status = msg.status
	}
	return m, nil
}

// applyCmd transforms a copy of the working image so the model never
// shares a buffer with a running command.
func (m PickerModel) applyCmd(name string) tea.Cmd {
	src, pipe := m.buf, m.pipe
	return func() tea.Msg {
		buf := src.Clone()
		if err := pipe.run(buf, []string{name}); err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{buf: buf, step: name, status: "applied " + name}
	}
}

func (m PickerModel) reloadCmd() tea.Cmd {
	input := m.input
	return func() tea.Msg {
		buf, err := imageio.Load(input)
		if err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{buf: buf, reset: true, status: "reloaded " + input}
	}
}

func (m PickerModel) exportCmd() tea.Cmd {
	buf, output := m.buf, m.output
	return func() tea.Msg {
		if err := imageio.Save(output, buf, imageio.DefaultQuality); err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{status: "exported " + output}
	}
}

func (m PickerModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Transforms"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→/↑/↓ navigate  ⏎ apply  r reload  e export  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderGrid(m.Names, gridColumns, m.Cursor))
	b.WriteString("\n\n")
	if m.Err != nil {
		b.WriteString(tuiErrorStyle.Render(iconError + " " + m.Err.Error()))
	} else {
		b.WriteString(tuiStatusStyle.Render(m.Status))
	}
	b.WriteString("\n")
	if len(m.History) > 0 {
		b.WriteString(StyleDim.Render("applied: " + strings.Join(m.History, " "+iconArrow+" ")))
		b.WriteString("\n")
	}
	return b.String()
}

// tuiCommand opens the interactive picker on one image.
func (c *CLI) tuiCommand() *cobra.Command {
	var output string
	var workers int
	cmd := &cobra.Command{
		Use:   "tui [image]",
		Short: "Pick transforms interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = defaultOutput(input)
			}
			buf, err := imageio.Load(input)
			if err != nil {
				return err
			}
			p, err := newPipeline(c.catalog, workers, false, c.Logger)
			if err != nil {
				return err
			}
			defer p.Close()
			// Log lines would tear the alternate screen.
			level := c.Logger.GetLevel()
			c.Logger.SetLevel(LogError)
			defer c.Logger.SetLevel(level)

			prog := tea.NewProgram(NewPickerModel(p, buf, input, output),
				tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := prog.Run()
			if err != nil {
				return err
			}
			m, ok := final.(PickerModel)
			if !ok {
				return nil
			}
			if m.Err != nil {
				printError(cmd.OutOrStdout(), "%v", m.Err)
			}
			if len(m.History) > 0 {
				printSuccess(cmd.OutOrStdout(), "Applied %s", strings.Join(m.History, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export file (default <image>-filtered.jpg)")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultWorkers(), "parallel row workers")
	return cmd
}
