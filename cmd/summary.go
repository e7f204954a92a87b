package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/CircleCI-Public/circleci-env-vars/envvar"
)

func renderSummary(w io.Writer, name string, results []envvar.Result) {
	if len(results) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Project", "Environment Variable", "Action", "Outcome"})

	for _, r := range results {
		table.Append([]string{r.Project.Slug(), name, r.Action.String(), string(r.Outcome)})
	}
	table.Render()
}
