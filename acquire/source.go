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
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/poiesic/bidmatch/core"
)

// DefaultTimeout is the default HTTP request timeout for portal fetches.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies portal requests.
const defaultUserAgent = "Mozilla/5.0 (compatible; bidmatch/1.0)"

// ErrEmptyURL is returned when a portal source is configured without a URL.
var ErrEmptyURL = errors.New("portal URL required")

// Source retrieves tender records from a single external portal.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Fetch retrieves the current tender listing. Implementations
	// honor ctx cancellation on network operations.
	Fetch(ctx context.Context) ([]core.TenderRecord, error)
}

// FetchError wraps a failure against a single portal.
type FetchError struct {
	Source  string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetching %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetching %s: %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// fetchHTML retrieves the body of a portal page.
func fetchHTML(ctx context.Context, client *http.Client, sourceName, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: sourceName, Message: "building request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: sourceName, Message: "request failed", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &FetchError{
			Source:  sourceName,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
	return resp, nil
}
