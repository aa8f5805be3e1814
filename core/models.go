package core

import (
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// SourceType identifies the acquisition channel a tender was fetched from.
type SourceType int

const (
	// SourceUnknown is used for records whose origin was not recorded.
	SourceUnknown SourceType = iota
	// SourceCPPP is the Central Public Procurement Portal.
	SourceCPPP
	// SourceGeM is the Government e-Marketplace.
	SourceGeM
)

// String returns the short portal tag used in exports and logs.
func (s SourceType) String() string {
	switch s {
	case SourceCPPP:
		return "CPPP"
	case SourceGeM:
		return "GeM"
	default:
		return "unknown"
	}
}

// ParseSourceType maps a portal tag to its SourceType, case-insensitively.
// Unrecognized tags return ErrInvalidSourceType.
func ParseSourceType(tag string) (SourceType, error) {
	switch strings.ToLower(tag) {
	case "cppp":
		return SourceCPPP, nil
	case "gem":
		return SourceGeM, nil
	default:
		return SourceUnknown, ErrInvalidSourceType
	}
}

// DeadlineUnknown is the sentinel shown for deadlines that could not be parsed.
const DeadlineUnknown = "unknown"

// TenderRecord is a single procurement opportunity as published by a portal.
// Title and Description may be empty but never carry any "absent" state;
// ingestion normalizes missing fields to the empty string.
type TenderRecord struct {
	ID           string
	Title        string
	Organization string
	Deadline     string // free-text date as published; may be unparsable
	EMDAmount    string // earnest money deposit, opaque currency text
	Description  string
	Source       SourceType
	URL          string
	FetchedAt    time.Time
}

// Text returns the title and description joined for vocabulary training
// and projection. Both sides may be empty.
func (t *TenderRecord) Text() string {
	if t.Description == "" {
		return t.Title
	}
	return t.Title + " " + t.Description
}

// deadlineLayouts are tried in order when parsing the free-text Deadline.
// Portals publish a mix of ISO dates and Indian-style day-first dates.
var deadlineLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// DeadlineTime parses the free-text deadline. The second return value is
// false when the deadline is empty or unparsable; such records degrade to
// DeadlineUnknown and are excluded from deadline-based ordering.
func (t *TenderRecord) DeadlineTime() (time.Time, bool) {
	if t.Deadline == "" || t.Deadline == DeadlineUnknown {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if ts, err := time.Parse(layout, t.Deadline); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SortByDeadline returns the records with a parsable deadline, earliest
// first. Records with an unknown deadline are dropped from the result.
func SortByDeadline(records []TenderRecord) []TenderRecord {
	type dated struct {
		record TenderRecord
		when   time.Time
	}
	withDates := make([]dated, 0, len(records))
	for _, r := range records {
		if when, ok := r.DeadlineTime(); ok {
			withDates = append(withDates, dated{record: r, when: when})
		}
	}
	sort.SliceStable(withDates, func(i, j int) bool {
		return withDates[i].when.Before(withDates[j].when)
	})
	out := make([]TenderRecord, len(withDates))
	for i, d := range withDates {
		out[i] = d.record
	}
	return out
}

// IDFromContent generates a deterministic identifier from text content using
// BLAKE2b hashing. Used for records that arrive without a portal identifier,
// so that identical content always maps to the same ID.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// MatchResult pairs a tender with its similarity score against a profile.
// Scores are cosine similarities in [0,1]; 0 means no vocabulary overlap.
type MatchResult struct {
	Tender TenderRecord
	Score  float64
}
