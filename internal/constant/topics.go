package constant

// Watermill topics for the in-process event bus.
const (
	TopicContextChanged   = "context.changed"
	TopicNetworkStatus    = "network.status"
	TopicClipboardChanged = "clipboard.changed"
)
