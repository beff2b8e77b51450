package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers replies to a chat.
type Sender interface {
	SendText(chatID int64, text string) error
	SendHTML(chatID int64, html string) error
	SendPhotoURL(chatID int64, url, caption string) error
	SendDocument(chatID int64, name string, data []byte, caption string) error
}

// API is the subset of *tgbotapi.BotAPI used for sending.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// BotSender implements Sender with the Telegram Bot API client.
type BotSender struct {
	api API
}

// NewSender creates a BotSender. api is usually a *tgbotapi.BotAPI.
func NewSender(api API) (*BotSender, error) {
	if api == nil {
		return nil, fmt.Errorf("bot API is required")
	}
	return &BotSender{api: api}, nil
}

// SendText sends plain text, split into several messages when longer than
// MaxMessageLength.
func (s *BotSender) SendText(chatID int64, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	for _, part := range Split(text, MaxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, part)
		if _, err := s.api.Send(msg); err != nil {
			return fmt.Errorf("sending message: %w", err)
		}
	}
	return nil
}

// SendHTML sends one message in HTML parse mode. The caller is responsible for
// escaping and for staying under MaxMessageLength.
func (s *BotSender) SendHTML(chatID int64, html string) error {
	if html == "" {
		return fmt.Errorf("message text is required")
	}
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("sending HTML message: %w", err)
	}
	return nil
}

// SendPhotoURL sends a photo that Telegram downloads from url.
func (s *BotSender) SendPhotoURL(chatID int64, url, caption string) error {
	if url == "" {
		return fmt.Errorf("photo URL is required")
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = caption
	if _, err := s.api.Send(photo); err != nil {
		return fmt.Errorf("sending photo: %w", err)
	}
	return nil
}

// SendDocument uploads data as a file named name.
func (s *BotSender) SendDocument(chatID int64, name string, data []byte, caption string) error {
	if len(data) == 0 {
		return fmt.Errorf("document is empty")
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := s.api.Send(doc); err != nil {
		return fmt.Errorf("sending document %s: %w", name, err)
	}
	return nil
}
