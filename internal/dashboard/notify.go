package dashboard

import "errors"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a user-facing message about the outcome of an operation.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// NotifyResult turns an operation result into a notification. A nil error
// yields a success notification carrying successMsg. A refresh that failed
// after a create is still an error, but the message says the record exists.
func NotifyResult(err error, successMsg string) Notification {
	var stale *RefreshAfterCreateError
	if errors.As(err, &stale) {
		return Notification{Kind: NotifyError, Message: successMsg + ", but reloading failed: " + stale.Err.Error()}
	}
	if err != nil {
		return Notification{Kind: NotifyError, Message: err.Error()}
	}
	return Notification{Kind: NotifySuccess, Message: successMsg}
}
