// Package user holds the user directory state container: an immutable State,
// the closed set of Events that can change it, the pure Reduce function, and
// the Store that owns the current State and runs asynchronous Actions.
package user

import (
	"encoding/json"
	"errors"
)

// Record is one user exactly as the remote source returned it. The store
// never validates or reshapes it. Records held by a State are read-only.
type Record json.RawMessage

// MarshalJSON returns the raw bytes unchanged.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("user.Record: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

// State is the single record held by a Store. The zero value is the
// unloaded state. A State is never modified after it is produced.
type State struct {
	users  []Record
	loaded bool
}

// Initial returns the state every session starts from: users not yet loaded.
func Initial() *State {
	return &State{}
}

// Loaded reports whether a Loaded event has been applied. An empty list that
// was loaded is distinct from no list at all.
func (s *State) Loaded() bool {
	return s != nil && s.loaded
}

// Users returns the loaded records in the order the source returned them, or
// nil while unloaded. A loaded-but-empty state returns an empty, non-nil slice.
// The records are copies; writing to them leaves the state unchanged.
func (s *State) Users() []Record {
	if !s.Loaded() {
		return nil
	}
	return cloneRecords(s.users)
}

// Len returns the number of loaded records.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}

// At returns a copy of the i-th loaded record.
func (s *State) At(i int) Record {
	if s.users[i] == nil {
		return nil
	}
	return append(Record(nil), s.users[i]...)
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		if r != nil {
			out[i] = append(Record(nil), r...)
		}
	}
	return out
}
