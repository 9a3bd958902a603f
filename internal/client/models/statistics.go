package models

import "strconv"

// Statistics counts forwarded events of an account by outcome.
type Statistics struct {
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
	Pending int64 `json:"pending"`
}

func (s Statistics) Total() int64 {
	return s.Success + s.Failed + s.Pending
}

// SuccessRate is the share of successful events as a percentage with one
// decimal, "0.0" when nothing was forwarded yet.
func (s Statistics) SuccessRate() string {
	total := s.Total()
	if total <= 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(s.Success)/float64(total)*100, 'f', 1, 64)
}
