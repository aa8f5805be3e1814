/*
Copyright 2025 Poiesic Systems

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package export writes tender listings and match results as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/poiesic/bidmatch/core"
)

var tenderHeader = []string{
	"tender_id", "title", "organization", "deadline",
	"emd_amount", "description", "source", "url",
}

var matchHeader = []string{
	"tender_id", "title", "organization", "deadline",
	"emd_amount", "source", "url", "match_score",
}

func tenderRow(record core.TenderRecord) []string {
	return []string{
		record.ID,
		record.Title,
		record.Organization,
		record.Deadline,
		record.EMDAmount,
		record.Description,
		record.Source.String(),
		record.URL,
	}
}

// WriteTenders writes a tender listing as CSV with a header row,
// preserving the order of the input.
func WriteTenders(w io.Writer, records []core.TenderRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tenderHeader); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write(tenderRow(record)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatches writes match results as CSV with a header row, in the
// order given, with scores formatted to four decimal places.
func WriteMatches(w io.Writer, results []core.MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchHeader); err != nil {
		return err
	}
	for _, result := range results {
		tender := result.Tender
		row := []string{
			tender.ID,
			tender.Title,
			tender.Organization,
			tender.Deadline,
			tender.EMDAmount,
			tender.Source.String(),
			tender.URL,
			strconv.FormatFloat(result.Score, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
