package domain

type LoadStatus string

const (
	LoadStatusIdle    LoadStatus = "idle"
	LoadStatusLoading LoadStatus = "loading"
	LoadStatusSuccess LoadStatus = "success"
	LoadStatusError   LoadStatus = "error"
)

func (s LoadStatus) String() string {
	return string(s)
}

func (s LoadStatus) IsValid() bool {
	switch s {
	case LoadStatusIdle, LoadStatusLoading, LoadStatusSuccess, LoadStatusError:
		return true
	default:
		return false
	}
}

// SessionState is a point-in-time snapshot of one lookup session.
// Species and Details are either both set or both nil.
type SessionState struct {
	Status  LoadStatus    `json:"status"`
	Key     string        `json:"key,omitempty"`
	Species *Species      `json:"species,omitempty"`
	Details *Pokemon      `json:"details,omitempty"`
	Error   string        `json:"error,omitempty"`
	Roster  []RosterEntry `json:"roster"`
	Version uint64        `json:"version"`
}

func (s SessionState) HasRecord() bool {
	return s.Species != nil && s.Details != nil
}

func (s SessionState) IsLoading() bool {
	return s.Status == LoadStatusLoading
}
