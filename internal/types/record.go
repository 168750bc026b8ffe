package types

import (
	"encoding/json"
	"fmt"
)

// PackageRecord is the raw JSON shape of one repository document entry:
//
//	{"name": str, "version": str, "size": int,
//	 "depends"?: [[str]|str, ...], "conflicts"?: [str, ...]}
type PackageRecord struct {
	Name      string           `json:"name"`
	Version   string           `json:"version"`
	Size      int              `json:"size"`
	Depends   []RawDependsItem `json:"depends,omitempty"`
	Conflicts []string         `json:"conflicts,omitempty"`
}

// RawDependsItem is one element of a "depends" list: either a bare
// constraint string (an atom, i.e. a one-element disjunction) or a
// list of constraint strings (an explicit disjunction group). This is
// the tagged-variant shape the nested depends grammar requires.
type RawDependsItem struct {
	Atoms []string
}

// UnmarshalJSON accepts either a JSON string or a JSON array of
// strings, collapsing a bare atom into a one-element group.
func (r *RawDependsItem) UnmarshalJSON(data []byte) error {
	var atom string
	if err := json.Unmarshal(data, &atom); err == nil {
		r.Atoms = []string{atom}
		return nil
	}
	var group []string
	if err := json.Unmarshal(data, &group); err == nil {
		r.Atoms = group
		return nil
	}
	return fmt.Errorf("depends entry is neither a string nor a list of strings: %s", string(data))
}
