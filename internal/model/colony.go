package model

// Colony is a group of entries that sit within feeding range of each other,
// produced by label propagation over the proximity graph.
type Colony struct {
	Entries []Entry `json:"entries"`
}
