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
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/bidmatch/core"
)

// Message is a rendered tender match alert.
type Message struct {
	TenderID   string
	Subject    string
	Body       string
	MatchScore float64
}

// Notifier delivers match alerts.
type Notifier interface {
	// Notify delivers a single alert. Implementations honor ctx
	// cancellation on network operations.
	Notify(ctx context.Context, msg Message) error
}

// NewMessage renders an alert for a match result.
func NewMessage(result core.MatchResult) Message {
	tender := result.Tender

	var body strings.Builder
	body.WriteString("We found a tender that matches your company profile:\n\n")
	fmt.Fprintf(&body, "Tender ID: %s\n", tender.ID)
	fmt.Fprintf(&body, "Title: %s\n", tender.Title)
	fmt.Fprintf(&body, "Organization: %s\n", tender.Organization)
	fmt.Fprintf(&body, "Deadline: %s\n", tender.Deadline)
	fmt.Fprintf(&body, "EMD Amount: %s\n", tender.EMDAmount)
	fmt.Fprintf(&body, "Match Score: %.2f\n", result.Score)
	if tender.URL != "" {
		fmt.Fprintf(&body, "\nView more details at: %s\n", tender.URL)
	}

	return Message{
		TenderID:   tender.ID,
		Subject:    fmt.Sprintf("New Tender Match: %s", tender.Title),
		Body:       body.String(),
		MatchScore: result.Score,
	}
}

// LogNotifier writes alerts to the structured log instead of
// delivering them externally.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs alerts.
// A nil logger falls back to slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info("tender match alert",
		"tender_id", msg.TenderID,
		"subject", msg.Subject,
		"match_score", msg.MatchScore)
	return nil
}
