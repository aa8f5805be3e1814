// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeTenderRecord fills in defaults so a record coming from an
// acquisition source is safe to use downstream. Runs once at ingestion;
// downstream code never re-validates.
//
// Rules:
//   - whitespace is trimmed on every text field
//   - a missing ID is synthesized from the record content hash
//   - an unparsable deadline keeps its raw text unless empty, in which
//     case it degrades to DeadlineUnknown
//   - a zero FetchedAt is stamped with the current time
func NormalizeTenderRecord(record *TenderRecord) {
	record.ID = strings.TrimSpace(record.ID)
	record.Title = strings.TrimSpace(record.Title)
	record.Organization = strings.TrimSpace(record.Organization)
	record.Deadline = strings.TrimSpace(record.Deadline)
	record.EMDAmount = strings.TrimSpace(record.EMDAmount)
	record.Description = strings.TrimSpace(record.Description)
	record.URL = strings.TrimSpace(record.URL)

	if record.ID == "" {
		record.ID = IDFromContent(record.Source.String() + "|" + record.Title + "|" + record.Organization + "|" + record.URL)
	}
	if record.Deadline == "" {
		record.Deadline = DeadlineUnknown
	}
	if record.FetchedAt.IsZero() {
		record.FetchedAt = time.Now().UTC()
	}
}

// ValidateTenderRecord validates a TenderRecord according to domain rules.
//
// Validation rules:
//   - ID must not be empty (NormalizeTenderRecord guarantees this)
//   - Source must be a known SourceType
//
// NOT validated:
//   - Title and Description (may be empty; matching treats them as "")
//   - Deadline and EMDAmount (opaque free text by design)
func ValidateTenderRecord(record *TenderRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidTenderRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTenderRecord, ErrEmptyID)
	}

	if err := ValidateSourceType(record.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTenderRecord, err)
	}

	return nil
}

// ValidateSourceType validates that a SourceType has a valid value.
func ValidateSourceType(source SourceType) error {
	switch source {
	case SourceUnknown, SourceCPPP, SourceGeM:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidSourceType, source)
	}
}
