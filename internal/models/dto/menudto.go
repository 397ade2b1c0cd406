package dto

// MenuResponseDTO lists the navigation entries available to the current session.
type MenuResponseDTO struct {
	Authenticated bool     `json:"authenticated"`
	User          string   `json:"user,omitempty"`
	Items         []string `json:"items"`
}
