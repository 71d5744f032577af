package entity

// NotificationRequest is a message for an external recipient. It is never persisted.
type NotificationRequest struct {
	Recipient string // E-mail address.
	Subject   string
	Body      string
}
