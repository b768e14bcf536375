package release

import (
	"strings"
	"time"
)

// Status represents the distribution lifecycle of a pipeline release.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusSubmitted  Status = "submitted"
	StatusProcessing Status = "processing"
	StatusPublished  Status = "published"
	StatusRejected   Status = "rejected"
)

var allStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusProcessing,
	StatusPublished,
	StatusRejected,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// pendingStatuses are the states counted as in-flight for analytics purposes.
var pendingStatuses = map[Status]struct{}{
	StatusDraft:      {},
	StatusSubmitted:  {},
	StatusProcessing: {},
}

// operatorTransitions enumerates the status changes an operator may request
// directly. The draft to submitted edge is deliberately absent: it only
// happens as a side effect of successful package generation.
var operatorTransitions = map[Status][]Status{
	StatusSubmitted:  {StatusProcessing, StatusRejected},
	StatusProcessing: {StatusPublished, StatusRejected},
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// CanAdvance reports whether an operator-requested transition from one
// status to another is defined by the lifecycle table.
func CanAdvance(from, to Status) bool {
	for _, next := range operatorTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from a status.
// Published releases remain terminal for the state machine even though their
// metrics fields continue to receive updates.
func IsTerminal(status Status) bool {
	switch status {
	case StatusPublished, StatusRejected:
		return true
	default:
		return false
	}
}

// IsPending reports whether a status counts toward the pending total.
func IsPending(status Status) bool {
	_, ok := pendingStatuses[status]
	return ok
}

// Type categorizes a release by track-count convention.
type Type string

const (
	TypeSingle      Type = "single"
	TypeEP          Type = "ep"
	TypeAlbum       Type = "album"
	TypeCompilation Type = "compilation"
)

var typeSet = map[Type]struct{}{
	TypeSingle:      {},
	TypeEP:          {},
	TypeAlbum:       {},
	TypeCompilation: {},
}

// ParseType converts a string into a known release Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := typeSet[normalized]
	return normalized, ok
}

// ReleaseDateLayout is the calendar-date format used for release dates.
const ReleaseDateLayout = "2006-01-02"

// Source represents a release as created by the artist, prior to any
// distribution enrollment. The pipeline only ever reads it.
type Source struct {
	ID          string
	OwnerID     string
	Title       string
	Artist      string
	Type        Type
	Genres      []string
	ReleaseDate string
	Description string
	AudioRef    string
	CoverRef    string
	UPC         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAudio reports whether an audio asset reference is attached.
func (s *Source) HasAudio() bool {
	return strings.TrimSpace(s.AudioRef) != ""
}

// HasCover reports whether a cover-art asset reference is attached.
func (s *Source) HasCover() bool {
	return strings.TrimSpace(s.CoverRef) != ""
}

// PrimaryGenre returns the first genre entry, or an empty string.
func (s *Source) PrimaryGenre() string {
	if len(s.Genres) == 0 {
		return ""
	}
	return s.Genres[0]
}

// SecondaryGenre returns the second genre entry, or an empty string.
func (s *Source) SecondaryGenre() string {
	if len(s.Genres) < 2 {
		return ""
	}
	return s.Genres[1]
}

// Pipeline is the distribution-facing projection of exactly one Source,
// persisted by the store. At most one Pipeline exists per (owner, source)
// pair; the store enforces this with a unique index.
type Pipeline struct {
	ID              string
	OwnerID         string
	SourceReleaseID string
	Title           string
	Artist          string
	Genre           string
	ReleaseDate     string
	Platforms       []string
	Status          Status
	Streams         int64
	Revenue         float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	SubmittedAt     *time.Time
}
