package domain

// NGO is a read-only directory entry.
type NGO struct {
	ID                string         `json:"id" yaml:"id"`
	Name              string         `json:"name" yaml:"name"`
	Description       string         `json:"description" yaml:"description"`
	Category          string         `json:"category" yaml:"category"`
	Address           string         `json:"address" yaml:"address"`
	City              string         `json:"city" yaml:"city"`
	Website           string         `json:"website" yaml:"website"`
	AcceptedDonations []DonationType `json:"accepted_donations" yaml:"accepted_donations"`
}

// Accepts reports whether the NGO takes the given donation type.
func (n NGO) Accepts(t DonationType) bool {
	for _, accepted := range n.AcceptedDonations {
		if accepted == t {
			return true
		}
	}
	return false
}
