package models

import "encoding/json"

// RoundView is the read model for one round. Open rounds only expose the
// number of answers so far, closed rounds expose the full results.
type RoundView struct {
	// RoundID is the round being shown
	RoundID int64 `json:"roundId"`

	// Status is the round status at read time
	Status RoundStatus `json:"status"`

	// AnswersCount is set for open rounds
	AnswersCount *int `json:"answersCount,omitempty"`

	// Mean is set for closed rounds with at least one answer
	Mean *float64 `json:"mean,omitempty"`

	// WinningValue is set for closed rounds with at least one answer
	WinningValue *int `json:"winningValue,omitempty"`

	// TotalAnswers is set for closed rounds
	TotalAnswers *int `json:"totalAnswers,omitempty"`

	// Winners are the answers tied closest to WinningValue, ascending by id
	Winners []*Answer `json:"winners,omitempty"`

	// Distribution holds the non-empty buckets ascending by value
	Distribution []DistributionEntry `json:"distribution,omitempty"`
}

// IsClosed reports whether the view carries results
func (v *RoundView) IsClosed() bool {
	return v.Status == RoundStatusClosed
}

// MarshalJSON always writes the result fields of a closed round, so a closed
// round without answers shows empty winners and distribution lists.
func (v RoundView) MarshalJSON() ([]byte, error) {
	type plain RoundView
	if !v.IsClosed() {
		return json.Marshal(plain(v))
	}

	winners := v.Winners
	if winners == nil {
		winners = []*Answer{}
	}
	dist := v.Distribution
	if dist == nil {
		dist = []DistributionEntry{}
	}
	total := 0
	if v.TotalAnswers != nil {
		total = *v.TotalAnswers
	}

	return json.Marshal(struct {
		RoundID      int64               `json:"roundId"`
		Status       RoundStatus         `json:"status"`
		Mean         *float64            `json:"mean"`
		WinningValue *int                `json:"winningValue"`
		TotalAnswers int                 `json:"totalAnswers"`
		Winners      []*Answer           `json:"winners"`
		Distribution []DistributionEntry `json:"distribution"`
	}{
		RoundID:      v.RoundID,
		Status:       v.Status,
		Mean:         v.Mean,
		WinningValue: v.WinningValue,
		TotalAnswers: total,
		Winners:      winners,
		Distribution: dist,
	})
}

// GeneralView is the read model across all rounds; it never names winners
type GeneralView struct {
	Mean         *float64            `json:"mean"`
	WinningValue *int                `json:"winningValue"`
	TotalAnswers int                 `json:"totalAnswers"`
	Distribution []DistributionEntry `json:"distribution"`
}
