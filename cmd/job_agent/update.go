package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/search"
	"github.com/jonathan/job-pipeline/internal/tracker"
)

var updateCmd = &cobra.Command{
	Use:   "update [query terms...]",
	Short: "Find a record and update its tracking state",
	Long: "Resolve a record by --id token or fuzzy query terms, then apply status, notes or\n" +
		"followup updates. Multiple fuzzy matches prompt for a numbered selection on a\n" +
		"terminal; any non-numeric or out-of-range reply cancels without changes.",
	RunE: runUpdate,
}

var (
	updateID         string
	updateStatus     string
	updateNotes      string
	updateFollowup   string
	updateDate       string
	updateSearchOnly bool
	updateHistory    bool
)

func init() {
	updateCmd.Flags().StringVar(&updateID, "id", "", "Job record token (skips fuzzy search)")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status, recorded in history")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "Notes, recorded in history")
	updateCmd.Flags().StringVar(&updateFollowup, "followup", "", "Followup date YYYY-MM-DD")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "Event date YYYY-MM-DD (default today)")
	updateCmd.Flags().BoolVar(&updateSearchOnly, "search-only", false, "Only show matches, change nothing")
	updateCmd.Flags().BoolVar(&updateHistory, "history", false, "Show the record's full history")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	jobID, cancelled, err := resolveTarget(args)
	if err != nil {
		return err
	}
	if cancelled || jobID == "" {
		return nil
	}

	if updateSearchOnly {
		return nil
	}

	if updateStatus == "" && updateNotes == "" && updateFollowup == "" {
		return showRecord(jobID)
	}

	tr := openTracker()
	switch {
	case updateStatus != "":
		err = tr.UpdateStatus(jobID, tracker.StatusInput{
			Status:       updateStatus,
			Notes:        updateNotes,
			FollowupDate: updateFollowup,
			Date:         updateDate,
		})
	case updateNotes != "":
		err = tr.AppendNote(jobID, updateNotes, updateDate)
		if err == nil && updateFollowup != "" {
			err = tr.SetFollowup(jobID, updateFollowup)
		}
	default:
		err = tr.SetFollowup(jobID, updateFollowup)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Updated %s\n", jobID)
	return nil
}

// resolveTarget picks the record to act on. The cancelled flag means the
// user backed out of an interactive selection, which is success.
func resolveTarget(queryTerms []string) (jobID string, cancelled bool, err error) {
	st := openStore()

	if updateID != "" {
		id, err := st.Resolve(updateID)
		return id, false, err
	}

	if len(queryTerms) == 0 {
		return "", false, fmt.Errorf("provide --id or query terms")
	}

	candidates, err := search.LoadCandidates(st)
	if err != nil {
		return "", false, err
	}
	matches := search.Run(candidates, queryTerms)

	switch len(matches) {
	case 0:
		fmt.Fprintf(os.Stdout, "No records match %q.\n", strings.Join(queryTerms, " "))
		return "", true, nil
	case 1:
		printMatches(matches)
		return matches[0].JobID, false, nil
	}

	printMatches(matches)
	if updateSearchOnly {
		return "", true, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.JobID
		}
		return "", false, fmt.Errorf("query matched %d records (%s); narrow the query or use --id",
			len(matches), strings.Join(names, ", "))
	}

	fmt.Fprintf(os.Stdout, "Select a record [1-%d], anything else cancels: ", len(matches))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stdout, "\nCancelled.")
		return "", true, nil
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 1 || choice > len(matches) {
		fmt.Fprintln(os.Stdout, "Cancelled.")
		return "", true, nil
	}
	return matches[choice-1].JobID, false, nil
}

func showRecord(jobID string) error {
	st := openStore()
	meta, err := st.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s: %s / %s\n", meta.JobID, meta.Company, meta.Role)
	fmt.Fprintf(os.Stdout, "Decision: %s\n", meta.Status)
	fmt.Fprintf(os.Stdout, "Current status: %s\n", meta.CurrentStatus())
	if note := meta.LatestNote(); note != "" {
		fmt.Fprintf(os.Stdout, "Latest note: %s\n", note)
	}

	if updateHistory && meta.Application != nil {
		for _, event := range meta.Application.History {
			fmt.Fprintf(os.Stdout, "  %s  %-12s %s\n", event.Date, event.Status, event.Notes)
		}
	}
	return nil
}
