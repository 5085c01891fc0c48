package widget

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrEmptyMessage rejects sends with nothing to say.
var ErrEmptyMessage = errors.New("message is empty")

// failureNotice is shown in the transcript when the relay call fails,
// instead of silently dropping the error.
const failureNotice = "Sorry, something went wrong. Please try again."

// Sender is the relay boundary the widget talks through.
type Sender interface {
	Send(ctx context.Context, userID, message string) (string, error)
}

// SendResult reports the outcome of one send, success or failure, so the
// UI layer never has to guess what happened.
type SendResult struct {
	UserMessage Message
	BotMessage  Message
	Err         error
}

// Send runs the full send flow: append the user message optimistically,
// relay it, and append either the bot reply (after the typing delay) or
// a visible failure notice.
func (w *Widget) Send(ctx context.Context, sender Sender, text string) SendResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{Err: ErrEmptyMessage}
	}

	userMsg := w.append(SenderUser, text)
	w.Sending = true
	w.Typing = true

	reply, err := sender.Send(ctx, w.sessionID, text)
	if err != nil {
		w.Sending = false
		w.Typing = false
		botMsg := w.append(SenderBot, failureNotice)
		return SendResult{UserMessage: userMsg, BotMessage: botMsg, Err: err}
	}

	if w.TypingDelay > 0 {
		select {
		case <-time.After(w.TypingDelay):
		case <-ctx.Done():
		}
	}

	w.Sending = false
	w.Typing = false
	botMsg := w.append(SenderBot, reply)
	return SendResult{UserMessage: userMsg, BotMessage: botMsg}
}
