package catalog

// ValidationResult is one design's schema report.
type ValidationResult struct {
	DesignID string   `json:"design_id"`
	Problems []string `json:"problems,omitzero"`
}

func (r ValidationResult) OK() bool {
	return len(r.Problems) == 0
}

// ValidateCatalog checks every design in the store against the
// required-field schema. Callers decide what to do with the report;
// loading itself never rejects a design for schema problems.
func ValidateCatalog(s Store) []ValidationResult {
	designs := s.All()
	results := make([]ValidationResult, 0, len(designs))
	for _, d := range designs {
		results = append(results, ValidationResult{
			DesignID: d.ID,
			Problems: d.CheckSchema(),
		})
	}
	return results
}
