package llm

type MessageRole string

const (
	Assistant MessageRole = "assistant"
	User      MessageRole = "user"
	System    MessageRole = "system"
	Tool      MessageRole = "tool"
)

type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Dialog is the ordered message list sent in a single request.
type Dialog []Message

// Last returns the final message of the dialog, or false when it is empty.
func (d Dialog) Last() (Message, bool) {
	if len(d) == 0 {
		return Message{}, false
	}
	return d[len(d)-1], true
}
