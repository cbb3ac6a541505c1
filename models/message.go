package models

// Message roles. A generation request is always exactly two messages:
// one system, one user.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat message sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
