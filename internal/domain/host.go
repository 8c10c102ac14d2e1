package domain

// Host is a device found by network discovery.
type Host struct {
	IP     string `json:"ip"`
	MAC    string `json:"mac,omitempty"`
	Vendor string `json:"vendor,omitempty"`
}
