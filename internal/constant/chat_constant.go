package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// ChatFallbackReply is shown when the model output cannot be parsed or validated
// and the candidate carried no usable reply of its own.
const ChatFallbackReply = "Sorry, I didn't quite get that. Could you rephrase what you'd like me to do with your tasks?"

// DefaultSessionTitle is used until the title worker generates a real one.
const DefaultSessionTitle = "New conversation"

// DefaultSubjectColor is applied when create_subject carries no color.
const DefaultSubjectColor = "#3B82F6"
