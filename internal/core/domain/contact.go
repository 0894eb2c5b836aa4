package domain

import "time"

// ContactStatus tracks how far a contact message has been handled.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

// IsProgress reports whether s may be set on an existing message. Any
// progress status may be set from any state, including unread to replied.
func (s ContactStatus) IsProgress() bool {
	return s == ContactRead || s == ContactReplied
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
