package model

// ScoredRecord pairs a corpus record with its similarity score.
// Position is the record's index in the corpus, which is also the tie-breaker during ranking.
type ScoredRecord struct {
	Record   Record              `json:"record"`
	Score    int                 `json:"score"`
	Position int                 `json:"position"`
	Matches  map[string][]string `json:"matches,omitempty"` // e.g., {"Subject": ["theft"], "Description": ["stolen"]}
}

// Prediction is the outcome of one ranking and generation pass.
type Prediction struct {
	QueryID string         `json:"query_id"` // unique UUID for this prediction
	Query   Record         `json:"query"`
	Hits    []ScoredRecord `json:"hits"`
	Prompt  string         `json:"prompt"`
	Answer  string         `json:"answer"`
	Took    int64          `json:"took"` // milliseconds
}

// Records returns the records of the given hits, in order.
func Records(hits []ScoredRecord) []Record {
	out := make([]Record, len(hits))
	for i, h := range hits {
		out[i] = h.Record
	}
	return out
}
