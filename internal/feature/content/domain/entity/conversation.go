// Package entity defines the domain entities for the content feature.
package entity

// Turn is one exchange in a conversation transcript.
type Turn struct {
	// Role is "user" or "model".
	Role string `json:"role"`

	// Text is the message content.
	Text string `json:"text"`
}
