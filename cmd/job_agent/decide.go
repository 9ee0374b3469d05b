package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/store"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Record an accept/reject/hold decision for a record",
	RunE:  runDecide,
}

var (
	decideID     string
	decideAccept bool
	decideReject bool
	decideHold   bool
	decideReason string
	decideDryRun bool
)

func init() {
	decideCmd.Flags().StringVar(&decideID, "id", "", "Job record token (required)")
	decideCmd.Flags().BoolVar(&decideAccept, "accept", false, "Mark the record ACCEPTED")
	decideCmd.Flags().BoolVar(&decideReject, "reject", false, "Mark the record REJECTED")
	decideCmd.Flags().BoolVar(&decideHold, "hold", false, "Keep the record PENDING")
	decideCmd.Flags().StringVar(&decideReason, "reason", "", "Reason recorded in history")
	decideCmd.Flags().BoolVar(&decideDryRun, "dry-run", false, "Preview without writing")

	_ = decideCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) error {
	var status string
	switch {
	case decideAccept && !decideReject && !decideHold:
		status = store.StatusAccepted
	case decideReject && !decideAccept && !decideHold:
		status = store.StatusRejected
	case decideHold && !decideAccept && !decideReject:
		status = store.StatusPending
	default:
		return fmt.Errorf("exactly one of --accept, --reject, --hold must be set")
	}

	st := openStore()
	jobID, err := st.Resolve(decideID)
	if err != nil {
		return err
	}

	if decideDryRun {
		meta, err := st.ReadMetadata(jobID)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "[dry-run] %s (%s / %s): %s -> %s\n",
			jobID, meta.Company, meta.Role, meta.Status, status)
		return nil
	}

	if err := openTracker().RecordDecision(jobID, status, decideReason); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Record %s marked %s\n", jobID, status)
	return nil
}
