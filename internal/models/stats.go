package models

// DistributionSize is the number of buckets in a histogram, one per possible value
const DistributionSize = MaxAnswerValue - MinAnswerValue + 1

// WinningStats is the result of a closed round, derived from its answers on every read
type WinningStats struct {
	RoundID      int64   `json:"roundId"`
	Mean         float64 `json:"mean"`
	WinningValue int     `json:"winningValue"`
	WinnerIDs    []int64 `json:"winnerIds"`
	TotalAnswers int     `json:"totalAnswers"`
}

// GeneralStats is the winning computation across every round. Mean and
// WinningValue are nil when there are no answers at all.
type GeneralStats struct {
	Mean         *float64 `json:"mean"`
	WinningValue *int     `json:"winningValue"`
	TotalAnswers int      `json:"totalAnswers"`
}

// Distribution is a dense histogram of answer counts indexed by value
type Distribution struct {
	// RoundID is nil for the distribution across all rounds
	RoundID *int64 `json:"roundId,omitempty"`

	// Counts holds one count per value, Counts[v] is the number of answers equal to v
	Counts [DistributionSize]int `json:"counts"`
}

// Total returns the number of answers counted
func (d *Distribution) Total() int {
	total := 0
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// NonZero returns the buckets with at least one answer, ascending by value
func (d *Distribution) NonZero() []DistributionEntry {
	entries := make([]DistributionEntry, 0)
	for v, c := range d.Counts {
		if c > 0 {
			entries = append(entries, DistributionEntry{Value: v + MinAnswerValue, Count: c})
		}
	}
	return entries
}

// DistributionFromEntries rebuilds a dense histogram from buckets. Buckets
// outside the answer range are ignored.
func DistributionFromEntries(roundID *int64, entries []DistributionEntry) *Distribution {
	d := &Distribution{RoundID: roundID}
	for _, e := range entries {
		if e.Value < MinAnswerValue || e.Value > MaxAnswerValue {
			continue
		}
		d.Counts[e.Value-MinAnswerValue] += e.Count
	}
	return d
}

// DistributionEntry is a single histogram bucket
type DistributionEntry struct {
	Value int `json:"value"`
	Count int `json:"count"`
}
