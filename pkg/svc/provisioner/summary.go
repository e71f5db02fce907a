package provisioner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	wrapWidth     = 72
	hintIndent    = "   "
	detailColumns = 60
)

// NextSteps returns the manual follow-ups for summary. Group activation is
// left out for root.
func NextSteps(summary Summary) []string {
	var steps []string

	if !summary.Invocation.IsRoot {
		steps = append(steps,
			"activate docker group membership: run 'newgrp docker' or log out and back in")
	}

	project := projectPath(summary)

	return append(steps,
		fmt.Sprintf("start the proxy: cd %s && docker compose up -d", project),
		"check the container is running: docker ps",
		"check nginx answers: curl -I http://localhost",
	)
}

// WriteSummary prints the outcome table, the run's key facts and the next steps.
func WriteSummary(printer *notify.Printer, summary Summary) {
	printer.Title("📋", "Summary")

	tbl := table.NewWriter()
	tbl.SetOutputMirror(printer.Out)
	tbl.SetStyle(table.StyleRounded)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: detailColumns},
	})
	tbl.AppendHeader(table.Row{"Step", "Status", "Detail"})

	for _, outcome := range summary.Outcomes {
		tbl.AppendRow(table.Row{outcome.Step, outcome.Status, outcome.Detail})
	}

	tbl.Render()

	home := summary.Invocation.HomeDir
	family := cases.Title(language.English).String(string(summary.Distro.Family))

	printer.Info("host: %s (%s family)", summary.Distro.DisplayName(), family)
	printer.Info("network: %s", summary.Network)
	printer.Info("scaffold: %s", fsutil.ShortenHomePath(summary.Layout.Root, home))

	writeNextSteps(printer, NextSteps(summary))
}

// writeNextSteps renders steps as a numbered list inside a rounded box.
func writeNextSteps(printer *notify.Printer, steps []string) {
	renderer := lipgloss.NewRenderer(printer.Out)
	box := renderer.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.ANSIColor(14)).
		Padding(0, 1)
	heading := renderer.NewStyle().Bold(true)

	var next strings.Builder

	next.WriteString(heading.Render("Next steps"))

	for i, step := range steps {
		wrapped := wordwrap.WrapString(step, wrapWidth)
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+hintIndent)
		fmt.Fprintf(&next, "\n%d. %s", i+1, wrapped)
	}

	_, _ = fmt.Fprintln(printer.Out, box.Render(next.String()))
}

func projectPath(summary Summary) string {
	if summary.Layout.Root == "" {
		return "~/nginx"
	}

	return fsutil.ShortenHomePath(summary.Layout.Root, summary.Invocation.HomeDir)
}
