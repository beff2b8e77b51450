package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nuscanoeing/canoebot/internal/logger"
	"github.com/nuscanoeing/canoebot/internal/telegram"
)

// ErrorText is sent when a handler fails.
const ErrorText = "Sorry, something went wrong. Please try again later."

// Request is an incoming message reduced to what handlers need.
type Request struct {
	ChatID   int64
	UserID   int64
	Username string
	// Command is the lower-cased command name without the slash or bot
	// suffix, empty for plain text.
	Command string
	Args    string
	Text    string
}

// Document is a file attached to a reply.
type Document struct {
	Name string
	Data []byte
}

// Reply is what a handler wants sent back. Fields are delivered in order:
// photo, text, document. Empty fields are skipped.
type Reply struct {
	Text string
	// Pre sends Text as a monospaced <pre> block, split over several messages
	// when needed.
	Pre      bool
	PhotoURL string
	Caption  string
	Document *Document
}

// Empty reports whether the reply has nothing to send.
func (r Reply) Empty() bool {
	return r.Text == "" && r.PhotoURL == "" && r.Document == nil
}

// Handler answers one request.
type Handler interface {
	Handle(ctx context.Context, req Request) (Reply, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) (Reply, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (Reply, error) {
	return f(ctx, req)
}

// Router dispatches requests to handlers by command name.
type Router struct {
	handlers map[string]Handler
	fallback Handler
	sender   telegram.Sender
}

// NewRouter creates a Router that delivers replies through sender. Requests
// with no matching handler are echoed.
func NewRouter(sender telegram.Sender) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		fallback: HandlerFunc(echo),
		sender:   sender,
	}
}

// Handle registers h for command name, matched case-insensitively.
func (r *Router) Handle(name string, h Handler) {
	r.handlers[strings.ToLower(strings.TrimPrefix(name, "/"))] = h
}

// HandleFunc registers f for command name.
func (r *Router) HandleFunc(name string, f func(ctx context.Context, req Request) (Reply, error)) {
	r.Handle(name, HandlerFunc(f))
}

// Commands returns the registered command names.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the handler for req. Handler errors are logged and turned into
// the ErrorText reply.
func (r *Router) Dispatch(ctx context.Context, req Request) Reply {
	h, ok := r.handlers[req.Command]
	name := req.Command
	if !ok || req.Command == "" {
		h = r.fallback
		name = "echo"
	}

	start := time.Now()
	reply, err := h.Handle(ctx, req)
	logger.RecordTiming("command."+name, time.Since(start))
	logger.IncrCounter("command." + name)

	if err != nil {
		logger.IncrCounter("command.errors")
		logger.Error("Command failed", logger.Fields{
			"command":  name,
			"chat_id":  req.ChatID,
			"user_id":  req.UserID,
			"username": req.Username,
		}, err)
		return Reply{Text: ErrorText}
	}
	return reply
}

// HandleMessage dispatches an incoming Telegram message and sends the reply.
func (r *Router) HandleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg == nil || msg.Chat == nil {
		return nil
	}
	req := NewRequest(msg)
	if req.Command == "" && req.Text == "" {
		return nil
	}

	logger.Debug("Message received", logger.Fields{
		"chat_id": req.ChatID,
		"command": req.Command,
	})
	reply := r.Dispatch(ctx, req)
	return Deliver(r.sender, req.ChatID, reply)
}

// NewRequest converts a Telegram message.
func NewRequest(msg *tgbotapi.Message) Request {
	req := Request{Text: msg.Text}
	if msg.Chat != nil {
		req.ChatID = msg.Chat.ID
	}
	if msg.From != nil {
		req.UserID = msg.From.ID
		req.Username = msg.From.UserName
	}
	if msg.IsCommand() {
		req.Command = strings.ToLower(msg.Command())
		req.Args = msg.CommandArguments()
	}
	return req
}

// Deliver sends every part of reply to chatID.
func Deliver(sender telegram.Sender, chatID int64, reply Reply) error {
	if reply.PhotoURL != "" {
		if err := sender.SendPhotoURL(chatID, reply.PhotoURL, reply.Caption); err != nil {
			return err
		}
	}
	if reply.Text != "" {
		if reply.Pre {
			for _, chunk := range telegram.PreChunks(reply.Text, telegram.MaxMessageLength) {
				if err := sender.SendHTML(chatID, chunk); err != nil {
					return err
				}
			}
		} else if err := sender.SendText(chatID, reply.Text); err != nil {
			return err
		}
	}
	if reply.Document != nil {
		if err := sender.SendDocument(chatID, reply.Document.Name, reply.Document.Data, reply.Caption); err != nil {
			return fmt.Errorf("delivering %s: %w", reply.Document.Name, err)
		}
	}
	return nil
}

func echo(_ context.Context, req Request) (Reply, error) {
	return Reply{Text: req.Text}, nil
}
