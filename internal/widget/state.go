// Package widget models the embedded chat widget: open/closed state,
// window sizing with clamped drag-resize, the message transcript and the
// send flow against the relay endpoint.
package widget

import (
	"time"

	"github.com/google/uuid"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one transcript entry. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// SizeMode enumerates the chat window sizes.
type SizeMode string

const (
	SizeSmall  SizeMode = "small"
	SizeMedium SizeMode = "medium"
	SizeLarge  SizeMode = "large"
	SizeCustom SizeMode = "custom"
)

// Drag-resize bounds in pixels.
const (
	MinWidth  = 250
	MaxWidth  = 600
	MinHeight = 300
	MaxHeight = 700
)

// presetDims maps each enumerated size to its window dimensions.
var presetDims = map[SizeMode][2]int{
	SizeSmall:  {300, 400},
	SizeMedium: {380, 550},
	SizeLarge:  {450, 650},
}

// Widget holds the client-side chat state for one page session. It is
// not safe for concurrent use; a widget belongs to a single UI loop.
type Widget struct {
	sessionID string

	Open     bool
	Size     SizeMode
	Width    int
	Height   int
	Messages []Message
	Sending  bool
	Typing   bool

	// TypingDelay pauses before the bot reply is appended, simulating a
	// natural typing gap. Presentation only.
	TypingDelay time.Duration

	now func() time.Time
}

// New mints a widget with a fresh session identity and the medium size.
func New() *Widget {
	w := &Widget{
		sessionID:   uuid.NewString(),
		Size:        SizeMedium,
		Messages:    []Message{},
		TypingDelay: 600 * time.Millisecond,
		now:         time.Now,
	}
	w.Width, w.Height = presetDims[SizeMedium][0], presetDims[SizeMedium][1]
	return w
}

// SessionID tags outbound relay requests; it carries no server state.
func (w *Widget) SessionID() string {
	return w.sessionID
}

// Toggle opens or closes the chat window.
func (w *Widget) Toggle() {
	w.Open = !w.Open
}

// SetSize applies an enumerated preset. Unknown modes are ignored.
func (w *Widget) SetSize(mode SizeMode) {
	dims, ok := presetDims[mode]
	if !ok {
		return
	}
	w.Size = mode
	w.Width, w.Height = dims[0], dims[1]
}

// Resize applies free-drag dimensions, clamped to the widget bounds,
// and switches the widget into custom size mode.
func (w *Widget) Resize(width, height int) {
	w.Size = SizeCustom
	w.Width = clamp(width, MinWidth, MaxWidth)
	w.Height = clamp(height, MinHeight, MaxHeight)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (w *Widget) append(sender, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: w.now(),
	}
	w.Messages = append(w.Messages, msg)
	return msg
}
