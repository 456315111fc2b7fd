package domain

// ScanRequest is the input of a contract scan.
type ScanRequest struct {
	// Text is the raw contract body. An empty text is valid and yields no risks.
	Text string `json:"text"`
	// URL optionally identifies where the text came from. It is informational
	// only and never used for scoring.
	URL string `json:"url,omitempty"`
}

// ScanResponse is the report produced for a single scan.
type ScanResponse struct {
	Summary string `json:"summary"`
	Score   int    `json:"score"`
	// Risks is ordered by rule evaluation order.
	Risks []Risk `json:"risks"`
}

// SeverityCounts returns how many risks of each severity the report holds.
func (r *ScanResponse) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int, len(Severities()))
	for _, risk := range r.Risks {
		counts[risk.Severity]++
	}

	return counts
}
