package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/dupcheck"
)

var checkDupCmd = &cobra.Command{
	Use:   "check-dup <intake-file>",
	Short: "Check whether a posting was already saved",
	Long: "Embed the intake file text and query the posting index for near duplicates.\n" +
		"Exits 1 when a saved posting is at or above the similarity threshold.",
	Args: cobra.ExactArgs(1),
	RunE: runCheckDup,
}

var (
	dupThreshold float64
	dupTopK      int
)

func init() {
	checkDupCmd.Flags().Float64Var(&dupThreshold, "threshold", 0, "Similarity threshold (default from config, else 0.82)")
	checkDupCmd.Flags().IntVar(&dupTopK, "top-k", dupcheck.DefaultTopK, "Number of neighbors to list")

	rootCmd.AddCommand(checkDupCmd)
}

func runCheckDup(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading intake file: %w", err)
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	index, err := dupcheck.NewIndex(cfg.QdrantAddr, cfg.Collection)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	threshold := dupThreshold
	if threshold == 0 {
		threshold = cfg.DupThreshold
	}
	checker := &dupcheck.Checker{
		Client:    client,
		Index:     index,
		Threshold: float32(threshold),
		TopK:      dupTopK,
	}

	logrus.Debugf("querying %s for %d neighbors", cfg.QdrantAddr, dupTopK)
	result, err := checker.Check(cmd.Context(), string(text))
	if err != nil {
		return err
	}

	if len(result.Hits) == 0 {
		fmt.Println("No saved postings found in the index.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Job ID", "Company", "Role", "Similarity"})
	for _, hit := range result.Hits {
		table.Append([]string{hit.JobID, hit.Company, hit.Role, fmt.Sprintf("%.3f", hit.Similarity)})
	}
	table.Render()

	if result.Duplicate {
		return fmt.Errorf("likely duplicate: a saved posting is at or above similarity %.2f", result.Threshold)
	}
	fmt.Printf("No duplicates at or above similarity %.2f.\n", result.Threshold)
	return nil
}
