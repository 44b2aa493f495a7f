package engine

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/zengjixiang/parcel/schema"
)

func convertMessages(msgs []api.Message, sev schema.Severity, file string) []schema.Diagnostic {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]schema.Diagnostic, len(msgs))
	for i, m := range msgs {
		out[i] = convertMessage(m, sev, file)
	}
	return out
}

// convertMessage maps one esbuild message. The primary location becomes
// the first highlight; located notes add highlights, unlocated notes and
// a replacement suggestion become hints.
func convertMessage(m api.Message, sev schema.Severity, file string) schema.Diagnostic {
	d := schema.Diagnostic{
		Message:  m.Text,
		ID:       m.ID,
		Severity: sev,
		File:     file,
	}

	if m.Location != nil {
		if m.Location.File != "" {
			d.File = m.Location.File
		}
		d.CodeHighlights = append(d.CodeHighlights, schema.CodeHighlight{Loc: location(m.Location)})
		if m.Location.Suggestion != "" {
			d.Hints = append(d.Hints, fmt.Sprintf("Replace with %q", m.Location.Suggestion))
		}
	}

	for _, n := range m.Notes {
		if n.Location == nil {
			d.Hints = append(d.Hints, n.Text)
			continue
		}
		d.CodeHighlights = append(d.CodeHighlights, schema.CodeHighlight{
			Message: n.Text,
			Loc:     location(n.Location),
		})
	}
	return d
}

// location converts esbuild's 1-based line, 0-based byte column and
// length into an inclusive 1-based span.
func location(l *api.Location) schema.SourceLocation {
	start := l.Column + 1
	end := start
	if l.Length > 1 {
		end = l.Column + l.Length
	}
	return schema.SourceLocation{
		StartLine: l.Line,
		StartCol:  start,
		EndLine:   l.Line,
		EndCol:    end,
	}
}
