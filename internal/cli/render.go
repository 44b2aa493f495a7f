package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD866"))

	locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// resolveOutput turns auto into text for terminals and json otherwise.
func resolveOutput(mode string, w io.Writer) string {
	if mode != OutputAuto {
		return mode
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return OutputText
	}
	return OutputJSON
}

// render writes an encoded result tree in the given output mode.
func render(w io.Writer, mode string, tree any) error {
	switch mode {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)

	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()

	default:
		res, err := transcoder.DecodeResult(tree)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, formatResult(res))
		return err
	}
}

func formatResult(res schema.Result) string {
	var b strings.Builder

	if res.Diagnostics != nil {
		for _, d := range res.Diagnostics.Errors {
			b.WriteString(formatDiagnostic(d))
		}
		for _, d := range res.Diagnostics.Warnings {
			b.WriteString(formatDiagnostic(d))
		}
		return b.String()
	}

	out := res.Output
	b.WriteString(out.Code)
	if !strings.HasSuffix(out.Code, "\n") {
		b.WriteByte('\n')
	}
	if out.Map != "" {
		b.WriteString("//# sourceMappingURL=data:application/json;base64,")
		b.WriteString(base64.StdEncoding.EncodeToString([]byte(out.Map)))
		b.WriteByte('\n')
	}
	if out.LegalComments != "" {
		b.WriteString(out.LegalComments)
	}
	for _, d := range out.Warnings {
		b.WriteString(formatDiagnostic(d))
	}
	return b.String()
}

func formatDiagnostic(d schema.Diagnostic) string {
	var b strings.Builder

	label := errorStyle.Render("error")
	if d.Severity == schema.SeverityWarning {
		label = warningStyle.Render("warning")
	}
	b.WriteString(label)
	if d.ID != "" {
		b.WriteString("[" + d.ID + "]")
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')

	for _, hl := range d.CodeHighlights {
		loc := fmt.Sprintf("%s:%d:%d", d.File, hl.Loc.StartLine, hl.Loc.StartCol)
		b.WriteString("  --> ")
		b.WriteString(locStyle.Render(loc))
		if hl.Message != "" {
			b.WriteString(" ")
			b.WriteString(hl.Message)
		}
		b.WriteByte('\n')
	}
	for _, h := range d.Hints {
		b.WriteString("  hint: ")
		b.WriteString(h)
		b.WriteByte('\n')
	}
	return b.String()
}
