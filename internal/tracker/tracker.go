// Package tracker applies mutating lifecycle events to a resolved job
// record and keeps the derived status fields consistent with its history.
//
// Every mutation path appends to the single structured history log;
// current-notes display derives from the latest entry rather than a
// separate mutable notes field.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-pipeline/internal/store"
)

// DateFormat is the calendar date layout used throughout metadata.
const DateFormat = "2006-01-02"

// Tracker mutates job record metadata through the store.
type Tracker struct {
	Store *store.Store
	// Now is the clock used for default dates; overridable in tests.
	Now func() time.Time
}

// New returns a Tracker over the given store.
func New(s *store.Store) *Tracker {
	return &Tracker{Store: s, Now: time.Now}
}

// ApplicationInput describes a recorded submission.
type ApplicationInput struct {
	Date         string // optional, defaults to today
	Method       string
	Notes        string // optional
	FollowupDate string // optional
}

// RecordApplication marks the record as applied and appends an "Applied"
// history event. The record must already have persisted metadata.
func (t *Tracker) RecordApplication(jobID string, in ApplicationInput) error {
	date, err := t.resolveDate(in.Date)
	if err != nil {
		return err
	}

	meta, err := t.Store.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	app := ensureApplication(meta)
	app.Applied = true
	app.AppliedDate = date
	app.AppliedMethod = in.Method
	if in.FollowupDate != "" {
		app.FollowupDate = in.FollowupDate
	}

	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("Applied via %s", in.Method)
	}
	appendEvent(app, date, "Applied", notes)

	return t.Store.WriteMetadata(jobID, meta)
}

// RecordDecision overwrites the record's top-level decision status
// (ACCEPTED/REJECTED/PENDING) and appends the decision to the history log.
// The decision note lands in the same append-only log every other mutation
// path writes to.
func (t *Tracker) RecordDecision(jobID, status, reason string) error {
	switch status {
	case store.StatusAccepted, store.StatusRejected, store.StatusPending:
	default:
		return fmt.Errorf("invalid decision status %q", status)
	}

	meta, err := t.Store.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	meta.Status = status
	appendEvent(ensureApplication(meta), t.Now().Format(DateFormat), status, reason)

	return t.Store.WriteMetadata(jobID, meta)
}

// StatusInput describes a status change or note-only update.
type StatusInput struct {
	Status       string // normalized to uppercase
	Notes        string // optional
	FollowupDate string // optional
	Date         string // optional, defaults to today
	// SyncDecision also overwrites the record's top-level decision status.
	SyncDecision bool
}

// UpdateStatus sets last_status/last_status_date and appends the change to
// history. With SyncDecision set it also overwrites the record's top-level
// status field.
func (t *Tracker) UpdateStatus(jobID string, in StatusInput) error {
	if strings.TrimSpace(in.Status) == "" {
		return fmt.Errorf("status must not be empty")
	}
	date, err := t.resolveDate(in.Date)
	if err != nil {
		return err
	}

	meta, err := t.Store.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	status := strings.ToUpper(strings.TrimSpace(in.Status))
	app := ensureApplication(meta)
	app.LastStatus = status
	app.LastStatusDate = date
	if in.FollowupDate != "" {
		app.FollowupDate = in.FollowupDate
	}
	if in.SyncDecision {
		meta.Status = status
	}
	appendEvent(app, date, status, in.Notes)

	return t.Store.WriteMetadata(jobID, meta)
}

// AppendNote appends a note-only history event carrying forward the current
// last_status as the event's status label.
func (t *Tracker) AppendNote(jobID, notes, date string) error {
	resolved, err := t.resolveDate(date)
	if err != nil {
		return err
	}

	meta, err := t.Store.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	app := ensureApplication(meta)
	status := app.LastStatus
	if status == "" {
		status = "UNKNOWN"
	}
	appendEvent(app, resolved, status, notes)

	return t.Store.WriteMetadata(jobID, meta)
}

// SetFollowup sets only the followup date, without touching history.
func (t *Tracker) SetFollowup(jobID, followup string) error {
	if _, err := time.Parse(DateFormat, followup); err != nil {
		return fmt.Errorf("invalid follow-up date %q: use YYYY-MM-DD", followup)
	}

	meta, err := t.Store.ReadMetadata(jobID)
	if err != nil {
		return err
	}
	ensureApplication(meta).FollowupDate = followup
	return t.Store.WriteMetadata(jobID, meta)
}

// resolveDate validates an explicit date or defaults to today. An
// unparseable date is a reported error; nothing is appended.
func (t *Tracker) resolveDate(date string) (string, error) {
	if date == "" {
		return t.Now().Format(DateFormat), nil
	}
	if _, err := time.Parse(DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	return date, nil
}

func ensureApplication(meta *store.Metadata) *store.Application {
	if meta.Application == nil {
		meta.Application = &store.Application{}
	}
	return meta.Application
}

// appendEvent grows the history log. History is append-only; no operation
// removes or rewrites a past entry.
func appendEvent(app *store.Application, date, status, notes string) {
	app.History = append(app.History, store.HistoryEvent{
		Date:   date,
		Status: status,
		Notes:  notes,
	})
}
