package models

// SourceState reports what the inventory scan found for one file
type SourceState string

const (
	StatePresent   SourceState = "present"
	StateAbsent    SourceState = "absent"
	StateMalformed SourceState = "malformed"
)

// AccountInventory lists the state of every source for an account
type AccountInventory struct {
	Account string                 `json:"account"`
	Sources map[string]SourceState `json:"sources"`
}

// Count returns how many sources are in the given state
func (a AccountInventory) Count(state SourceState) int {
	n := 0
	for _, s := range a.Sources {
		if s == state {
			n++
		}
	}
	return n
}
