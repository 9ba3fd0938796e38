package chat

import "fmt"

// SystemPrompt is the fixed instruction that anchors every conversation.
// It is sent verbatim to the upstream model on every exchange, so changing
// it changes the assistant's behavior contract.
const SystemPrompt = "You are the Lumessence beauty concierge. Only answer questions about " +
	"Lumessence skincare and cosmetic products, routines, and ingredients. If a question " +
	"is not about Lumessence or its products, reply exactly: \"I can only help with " +
	"Lumessence products and routines.\" Keep answers short and friendly. Never give " +
	"medical or legal advice."

// Greeting is the assistant's opening line shown on a fresh conversation.
const Greeting = "Hi! I'm the Lumessence concierge. Ask me anything about our products or your skincare routine."

// Context holds facts extracted locally from the user's turns.
type Context struct {
	UserName string `json:"userName,omitempty"`
}

// Conversation is the full ordered message history plus extracted context.
// Exactly one exists per widget visitor; it is the sole unit of durable state.
// Messages[0] is always the system prompt once seeded.
type Conversation struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	Context  Context   `json:"context"`
}

// Seeded returns a fresh conversation carrying the system prompt and greeting.
func Seeded(id string) Conversation {
	return Conversation{
		ID: id,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemPrompt},
			{Role: RoleAssistant, Content: Greeting},
		},
	}
}

// ProfileNote renders the system note recorded when a user name is learned.
// It is inserted immediately after the system prompt.
func ProfileNote(name string) string {
	return fmt.Sprintf("User profile: name = %s", name)
}

// Acknowledgement renders the locally generated reply to a newly learned name.
func Acknowledgement(name string) string {
	return fmt.Sprintf("Nice to meet you, %s!", name)
}
