package acquire

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/bidmatch/core"
)

// portalSource fetches a portal listing page and scrapes tender rows
// from its HTML. Portals frequently render listings client-side; when
// the fetched markup yields no rows the seeded listing is returned
// instead so a refresh still produces data.
type portalSource struct {
	name       string
	url        string
	sourceType core.SourceType
	client     *http.Client
	seeded     []core.TenderRecord
	logger     *slog.Logger
}

// PortalOption configures a portal source.
type PortalOption func(*portalSource)

// WithHTTPClient sets a custom HTTP client.
// Default is a client with DefaultTimeout.
func WithHTTPClient(client *http.Client) PortalOption {
	return func(s *portalSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithSourceLogger sets a custom logger.
// Default is slog.Default().
func WithSourceLogger(logger *slog.Logger) PortalOption {
	return func(s *portalSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newPortalSource(name, url string, sourceType core.SourceType, seeded []core.TenderRecord, opts ...PortalOption) (*portalSource, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	s := &portalSource{
		name:       name,
		url:        url,
		sourceType: sourceType,
		client:     &http.Client{Timeout: DefaultTimeout},
		seeded:     seeded,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *portalSource) Name() string {
	return s.name
}

func (s *portalSource) Fetch(ctx context.Context) ([]core.TenderRecord, error) {
	resp, err := fetchHTML(ctx, s.client, s.name, s.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: s.name, Message: "parsing HTML", Cause: err}
	}

	records := s.parseListing(doc)
	if len(records) == 0 {
		s.logger.Warn("portal listing yielded no rows, using seeded records",
			"source", s.name, "seeded", len(s.seeded))
		return s.seeded, nil
	}

	s.logger.Info("scraped portal listing", "source", s.name, "tenders", len(records))
	return records, nil
}

// parseListing extracts tender rows from a portal listing table.
// A row qualifies when it carries at least six cells: tender id,
// title, organization, deadline, EMD amount and description. The
// tender URL is taken from the first anchor in the title cell when
// present.
func (s *portalSource) parseListing(doc *goquery.Document) []core.TenderRecord {
	var records []core.TenderRecord

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		record := core.TenderRecord{
			ID:           cell(0),
			Title:        cell(1),
			Organization: cell(2),
			Deadline:     cell(3),
			EMDAmount:    cell(4),
			Description:  cell(5),
			Source:       s.sourceType,
		}

		if href, ok := cells.Eq(1).Find("a").First().Attr("href"); ok {
			record.URL = strings.TrimSpace(href)
		}

		if record.Title == "" {
			return
		}
		records = append(records, record)
	})

	return records
}
