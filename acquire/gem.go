package acquire

import "github.com/poiesic/bidmatch/core"

// GeMURL is the Government e-Marketplace bid listing page.
const GeMURL = "https://bidplus.gem.gov.in/all-bids"

// gemSeeded is the fallback listing for the GeM portal, used when the
// live page yields no scrapable rows.
var gemSeeded = []core.TenderRecord{
	{
		ID:           "GEM-2025-B-001",
		Title:        "Annual Maintenance Contract for Data Center",
		Organization: "National Informatics Centre",
		Deadline:     "2025-05-10",
		EMDAmount:    "₹300,000",
		Description:  "Comprehensive maintenance of servers, storage and network infrastructure",
		Source:       core.SourceGeM,
		URL:          "https://bidplus.gem.gov.in/bid/GEM-2025-B-001",
	},
	{
		ID:           "GEM-2025-B-002",
		Title:        "Smart City IoT Infrastructure Development",
		Organization: "Smart Cities Mission",
		Deadline:     "2025-05-25",
		EMDAmount:    "₹500,000",
		Description:  "Development of IoT sensors and analytics platform for traffic management, waste management and public safety",
		Source:       core.SourceGeM,
		URL:          "https://bidplus.gem.gov.in/bid/GEM-2025-B-002",
	},
	{
		ID:           "GEM-2025-B-003",
		Title:        "Cloud Migration Services for Government Applications",
		Organization: "Ministry of Railways",
		Deadline:     "2025-06-05",
		EMDAmount:    "₹250,000",
		Description:  "Migration of legacy applications to cloud infrastructure with data security and performance optimization",
		Source:       core.SourceGeM,
		URL:          "https://bidplus.gem.gov.in/bid/GEM-2025-B-003",
	},
}

// NewGeMSource creates a Source for the Government e-Marketplace
// portal.
func NewGeMSource(opts ...PortalOption) (Source, error) {
	return newPortalSource("GeM", GeMURL, core.SourceGeM, gemSeeded, opts...)
}
