package chat

// Client defines an interface for sending messages through the chat platform.
// This decouples the application services from the specific bot library.
type Client interface {
	// SendPrivate delivers text visible only to the given user.
	SendPrivate(userID int64, text string) error
	// Broadcast delivers text to a community's broadcast target.
	Broadcast(target Target, text string) error
	// Mention renders a subject id as a platform mention usable inside text.
	Mention(subjectID string) string
}
