package domain

// Message is a single turn of the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationContext is caller-supplied state from previous turns.
// It is read-only for this service: the caller persists updates between turns.
type ConversationContext struct {
	History        []Message      `json:"history,omitempty"`
	CurrentContext map[string]any `json:"currentContext,omitempty"`
}

// LastAction returns the action tag echoed on a previous turn, if any.
func (c *ConversationContext) LastAction() string {
	if c == nil {
		return ""
	}
	s, _ := c.CurrentContext["lastAction"].(string)
	return s
}

// FilterString returns a previously echoed filter value by key, if any.
// The sentinel "all" counts as unset.
func (c *ConversationContext) FilterString(key string) string {
	if c == nil {
		return ""
	}
	filters, _ := c.CurrentContext["filters"].(map[string]any)
	s, _ := filters[key].(string)
	if s == FilterAll {
		return ""
	}
	return s
}
