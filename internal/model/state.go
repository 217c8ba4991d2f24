package model

// State is the full collection owned by the store, and the unit that is
// snapshotted.
type State struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// Clone returns a deep copy of the slices.
func (s State) Clone() State {
	return State{
		Accounts:     append([]Account(nil), s.Accounts...),
		Transactions: append([]Transaction(nil), s.Transactions...),
	}
}
