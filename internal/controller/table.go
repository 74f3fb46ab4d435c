package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	m "latte.dev/pkg/latte/internal/model"
)

// DisplaySuites writes a table of suite files and the size of each.
func DisplaySuites(ctx context.Context, out io.Writer, suites []m.Suite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%s", renderSuiteTable(suites))

	return err
}

func renderSuiteTable(suites []m.Suite) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Groups", "Cases", "Hooks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var total m.Counts

	for _, suite := range suites {
		counts := suite.Counts()
		total.Groups += counts.Groups
		total.Cases += counts.Cases
		total.Hooks += counts.Hooks

		table.Append([]string{
			string(suite.Path),
			fmt.Sprintf("%d", counts.Groups),
			fmt.Sprintf("%d", counts.Cases),
			fmt.Sprintf("%d", counts.Hooks),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(suites)),
		fmt.Sprintf("%d", total.Groups),
		fmt.Sprintf("%d", total.Cases),
		fmt.Sprintf("%d", total.Hooks),
	})

	table.Render()

	return tableBuffer.String()
}
