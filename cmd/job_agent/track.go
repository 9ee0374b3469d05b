package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/tracker"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track application submissions and status changes",
}

var trackApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Record that an application was submitted",
	RunE:  runTrackApply,
}

var trackStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Record an application status change",
	RunE:  runTrackStatus,
}

var trackShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a record's tracking state and history",
	RunE:  runTrackShow,
}

var trackListPendingCmd = &cobra.Command{
	Use:   "list-pending",
	Short: "List applied records with a followup date",
	RunE:  runTrackListPending,
}

var (
	trackID       string
	trackDate     string
	trackMethod   string
	trackNotes    string
	trackFollowup string
	trackStatus   string
)

func init() {
	for _, c := range []*cobra.Command{trackApplyCmd, trackStatusCmd, trackShowCmd} {
		c.Flags().StringVar(&trackID, "id", "", "Job record token (required)")
		_ = c.MarkFlagRequired("id")
	}

	trackApplyCmd.Flags().StringVar(&trackDate, "date", "", "Application date YYYY-MM-DD (default today)")
	trackApplyCmd.Flags().StringVar(&trackMethod, "method", "company website", "How the application was submitted")
	trackApplyCmd.Flags().StringVar(&trackNotes, "notes", "", "Notes for the history entry")
	trackApplyCmd.Flags().StringVar(&trackFollowup, "followup", "", "Followup date YYYY-MM-DD")

	trackStatusCmd.Flags().StringVar(&trackStatus, "status", "", "New status, e.g. INTERVIEW, OFFER, REJECTED (required)")
	trackStatusCmd.Flags().StringVar(&trackDate, "date", "", "Status date YYYY-MM-DD (default today)")
	trackStatusCmd.Flags().StringVar(&trackNotes, "notes", "", "Notes for the history entry")
	trackStatusCmd.Flags().StringVar(&trackFollowup, "followup", "", "Followup date YYYY-MM-DD")
	_ = trackStatusCmd.MarkFlagRequired("status")

	trackCmd.AddCommand(trackApplyCmd, trackStatusCmd, trackShowCmd, trackListPendingCmd)
	rootCmd.AddCommand(trackCmd)
}

func runTrackApply(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(trackID)
	if err != nil {
		return err
	}

	err = openTracker().RecordApplication(jobID, tracker.ApplicationInput{
		Date:         trackDate,
		Method:       trackMethod,
		Notes:        trackNotes,
		FollowupDate: trackFollowup,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Recorded application for %s\n", jobID)
	return nil
}

func runTrackStatus(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(trackID)
	if err != nil {
		return err
	}

	err = openTracker().UpdateStatus(jobID, tracker.StatusInput{
		Status:       trackStatus,
		Notes:        trackNotes,
		FollowupDate: trackFollowup,
		Date:         trackDate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Updated %s to %s\n", jobID, trackStatus)
	return nil
}

func runTrackShow(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(trackID)
	if err != nil {
		return err
	}

	meta, err := st.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s: %s / %s\n", meta.JobID, meta.Company, meta.Role)
	fmt.Fprintf(os.Stdout, "Decision: %s\n", meta.Status)
	fmt.Fprintf(os.Stdout, "Current status: %s\n", meta.CurrentStatus())

	app := meta.Application
	if app == nil {
		fmt.Fprintln(os.Stdout, "Not applied yet.")
		return nil
	}
	if app.Applied {
		fmt.Fprintf(os.Stdout, "Applied: %s via %s\n", app.AppliedDate, app.AppliedMethod)
	}
	if app.FollowupDate != "" {
		fmt.Fprintf(os.Stdout, "Followup due: %s\n", app.FollowupDate)
	}

	if len(app.History) > 0 {
		fmt.Fprintln(os.Stdout, "\nHistory:")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Date", "Status", "Notes"})
		for _, event := range app.History {
			table.Append([]string{event.Date, event.Status, event.Notes})
		}
		table.Render()
	}
	return nil
}

func runTrackListPending(cmd *cobra.Command, args []string) error {
	st := openStore()
	folders, err := st.ListFolders()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Job ID", "Company", "Role", "Applied", "Status", "Followup"})

	pending := 0
	for _, folder := range folders {
		meta, err := st.ReadMetadata(folder)
		if err != nil {
			continue
		}
		app := meta.Application
		if app == nil || !app.Applied || app.FollowupDate == "" {
			continue
		}
		pending++
		table.Append([]string{meta.JobID, meta.Company, meta.Role, app.AppliedDate, meta.CurrentStatus(), app.FollowupDate})
	}

	if pending == 0 {
		fmt.Fprintln(os.Stdout, "No applied records with a pending followup.")
		return nil
	}
	table.Render()
	return nil
}
