package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zengjixiang/parcel/transcoder"
)

// loaders cycled with ctrl+l; "" derives the loader from the filename.
var loaders = []string{"", "js", "jsx", "ts", "tsx"}

func newREPLCommand() *cobra.Command {
	var filename string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive editor that re-runs the transform on every edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := settingsFrom(cmd.Context())
			eng, err := openEngine(cmd.Context(), s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer eng.Close(cmd.Context())

			m := newREPLModel(cmd.Context(), eng, s, filename)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "repl.tsx", "Filename reported to the transform")
	addOptionFlags(cmd)
	return cmd
}

type replModel struct {
	ctx      context.Context
	engine   Engine
	settings *Settings
	filename string
	editor   textarea.Model
	output   viewport.Model
	last     string
	loader   int
	seq      int
	minify   bool
	failed   bool
}

type transformedMsg struct {
	text   string
	seq    int
	failed bool
}

func newREPLModel(ctx context.Context, eng Engine, s *Settings, filename string) *replModel {
	editor := textarea.New()
	editor.Placeholder = "Type JavaScript or TypeScript..."
	editor.ShowLineNumbers = true
	editor.SetWidth(80)
	editor.SetHeight(10)
	editor.Focus()

	return &replModel{
		ctx:      ctx,
		engine:   eng,
		settings: s,
		filename: filename,
		editor:   editor,
		output:   viewport.New(80, 10),
	}
}

func (m *replModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l":
			m.loader = (m.loader + 1) % len(loaders)
			return m, m.rerun()
		case "ctrl+n":
			m.minify = !m.minify
			return m, m.rerun()
		}

	case tea.WindowSizeMsg:
		half := max((msg.Height-4)/2, 3)
		m.editor.SetWidth(msg.Width)
		m.editor.SetHeight(half)
		m.output.Width = msg.Width
		m.output.Height = half

	case transformedMsg:
		// Results of superseded edits are dropped.
		if msg.seq == m.seq {
			m.failed = msg.failed
			m.output.SetContent(msg.text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != m.last {
		m.last = m.editor.Value()
		return m, tea.Batch(cmd, m.rerun())
	}
	return m, cmd
}

// rerun returns a command transforming the current editor content.
func (m *replModel) rerun() tea.Cmd {
	m.seq++
	seq := m.seq
	tree := m.settings.CallTree(m.editor.Value(), m.filename)
	if l := loaders[m.loader]; l != "" {
		tree["loader"] = l
	}
	if m.minify {
		tree["minify"] = true
	}

	return func() tea.Msg {
		out, err := m.engine.Transform(m.ctx, tree)
		if err != nil {
			return transformedMsg{seq: seq, text: errorStyle.Render(err.Error()), failed: true}
		}
		res, err := transcoder.DecodeResult(out)
		if err != nil {
			return transformedMsg{seq: seq, text: errorStyle.Render(err.Error()), failed: true}
		}
		return transformedMsg{seq: seq, text: formatResult(res), failed: res.Diagnostics != nil}
	}
}

func (m *replModel) View() string {
	var b strings.Builder

	loader := loaders[m.loader]
	if loader == "" {
		loader = "auto"
	}
	b.WriteString(titleStyle.Render("Transform REPL"))
	b.WriteString(fmt.Sprintf(" %s  engine=%s loader=%s minify=%t\n\n", m.filename, m.engine.Name(), loader, m.minify))
	b.WriteString(m.editor.View())
	b.WriteString("\n")

	status := "output"
	if m.failed {
		status = errorStyle.Render("diagnostics")
	}
	b.WriteString(helpStyle.Render("── ") + status + helpStyle.Render(" ──"))
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+l loader • ctrl+n minify • esc quit"))
	return b.String()
}
