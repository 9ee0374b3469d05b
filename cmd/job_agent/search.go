package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Fuzzy-search job records",
	Long: "Search records by company, role, status or UUID. Terms are AND-ed; the literal\n" +
		"term OR separates alternative groups. Zero matches is not an error.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	candidates, err := search.LoadCandidates(openStore())
	if err != nil {
		return err
	}

	matches := search.Run(candidates, args)
	if len(matches) == 0 {
		fmt.Fprintf(os.Stdout, "No records match %q.\n", strings.Join(args, " "))
		return nil
	}

	printMatches(matches)
	return nil
}

func printMatches(matches []search.Match) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Job ID", "Company", "Role", "Status", "Score", "Matched"})
	for i, m := range matches {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			m.JobID,
			m.Company,
			m.Role,
			m.Status,
			fmt.Sprintf("%d", m.Score),
			strings.Join(m.MatchedBecause, ", "),
		})
	}
	table.Render()
}
