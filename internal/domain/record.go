package domain

import "time"

// RunRecord is the persisted history of one run. It never holds the password.
type RunRecord struct {
	Project     string          `json:"project"`
	Account     string          `json:"account"`
	LoginPage   string          `json:"login_page"`
	Debug       bool            `json:"debug"`
	Remote      RemoteReference `json:"remote"`
	Transitions []Transition    `json:"transitions"`
	Stage       Stage           `json:"stage,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	EndedAt     time.Time       `json:"ended_at"`
}

// OK reports a run that ended without a failure.
func (r RunRecord) OK() bool {
	return r.Stage == ""
}
