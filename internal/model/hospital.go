package model

// Hospital is a veterinary hospital pin. Lookup shares the same rectangular
// proximity window as duplicate-candidate selection so "nearby" means the
// same thing across features.
type Hospital struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location Location `json:"location"`
}
