package form

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	validationTitle  = "Errores de validación"
	validationIntro  = "Por favor corrija los siguientes errores:"
	validationBullet = "• "
)

// Notification is a user-facing message produced by the session.
type Notification struct {
	Title   string
	Message string
}

// Notifier presents notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (fn NotifierFunc) Notify(ctx context.Context, n Notification) {
	fn(ctx, n)
}

// WriterNotifier prints notifications to w.
type WriterNotifier struct {
	W io.Writer
}

func (w WriterNotifier) Notify(_ context.Context, n Notification) {
	if w.W == nil {
		return
	}
	fmt.Fprintf(w.W, "%s\n%s\n", n.Title, n.Message)
}

// ValidationNotification formats messages as one bulleted notification.
func ValidationNotification(messages []string) Notification {
	var b strings.Builder
	b.WriteString(validationIntro)
	for _, message := range messages {
		b.WriteString("\n")
		b.WriteString(validationBullet)
		b.WriteString(message)
	}
	return Notification{Title: validationTitle, Message: b.String()}
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, Notification) {}
