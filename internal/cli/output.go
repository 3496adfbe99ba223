package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0B1220")).
			Background(lipgloss.Color("#EC4899")).
			Padding(0, 1)
)

// render writes v as JSON or YAML, or calls text for the text format. A nil
// text falls back to YAML, which reads well for free-form documents.
func (r *runner) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch {
	case r.output == formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case r.output == formatYAML || text == nil:
		return writeYAML(w, v)
	default:
		return text(w)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// field is one label/value line of a detail view.
type field struct {
	label string
	value string
}

func writeFields(w io.Writer, fields []field) error {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		label := labelStyle.Render(fmt.Sprintf("%-*s", width, f.label))
		if _, err := fmt.Fprintf(w, "%s  %s\n", label, f.value); err != nil {
			return err
		}
	}
	return nil
}

func supportBanner(tenantID string) string {
	return bannerStyle.Render("SUPPORT MODE · tenant " + tenantID)
}
