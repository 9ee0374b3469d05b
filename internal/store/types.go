// Package store persists job records as folders of YAML and generated
// artifacts under a single record-store root.
package store

// Top-level decision statuses for a job record.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Metadata is the contents of a record's metadata.yaml file.
type Metadata struct {
	UUID        string       `yaml:"uuid"`
	JobID       string       `yaml:"job_id"`
	Company     string       `yaml:"company"`
	Role        string       `yaml:"role"`
	Location    string       `yaml:"location,omitempty"`
	Website     string       `yaml:"website,omitempty"`
	SourceFile  string       `yaml:"source_file,omitempty"`
	Created     string       `yaml:"created"`
	Status      string       `yaml:"status"`
	Score       *ScoreResult `yaml:"score,omitempty"`
	Application *Application `yaml:"application,omitempty"`
}

// ScoreResult holds the parsed summary of the most recent score report.
type ScoreResult struct {
	MatchScore     int    `yaml:"match_score"`
	Recommendation string `yaml:"recommendation"`
	ReportFile     string `yaml:"report_file,omitempty"`
	ScoredAt       string `yaml:"scored_at,omitempty"`
}

// Application tracks an actual submission and its lifecycle after intake.
type Application struct {
	Applied        bool           `yaml:"applied"`
	AppliedDate    string         `yaml:"applied_date,omitempty"`
	AppliedMethod  string         `yaml:"applied_method,omitempty"`
	LastStatus     string         `yaml:"last_status,omitempty"`
	LastStatusDate string         `yaml:"last_status_date,omitempty"`
	FollowupDate   string         `yaml:"followup_date,omitempty"`
	History        []HistoryEvent `yaml:"history,omitempty"`
}

// HistoryEvent is one entry in the append-only application history.
type HistoryEvent struct {
	Date   string `yaml:"date"`
	Status string `yaml:"status"`
	Notes  string `yaml:"notes,omitempty"`
}

// LatestNote returns the notes of the most recently appended history event,
// or empty if no history exists. Current-notes display is derived from the
// history log rather than kept as a separate mutable field.
func (m *Metadata) LatestNote() string {
	if m.Application == nil || len(m.Application.History) == 0 {
		return ""
	}
	return m.Application.History[len(m.Application.History)-1].Notes
}

// CurrentStatus returns the application's last tracked status when one
// exists, falling back to the record's top-level decision status.
func (m *Metadata) CurrentStatus() string {
	if m.Application != nil && m.Application.LastStatus != "" {
		return m.Application.LastStatus
	}
	if m.Status != "" {
		return m.Status
	}
	return "Unknown"
}
