package chat

// Roles a conversation turn can carry. The role is part of the payload
// relayed upstream and must round-trip unchanged.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
