package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nuscanoeing/canoebot/internal/logger"
)

const (
	// HealthPath reports liveness and the metrics snapshot.
	HealthPath = "/healthz"

	pollTimeoutSeconds = 30
	shutdownTimeout    = 10 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

// Bot connects a Router to the Telegram Bot API.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *Router
}

// New creates a Bot.
func New(api *tgbotapi.BotAPI, router *Router) *Bot {
	return &Bot{api: api, router: router}
}

// RegisterCommands publishes the command menu. Telegram only accepts
// lower-case command names there.
func (b *Bot) RegisterCommands() error {
	commands := make([]tgbotapi.BotCommand, len(Menu))
	for i, c := range Menu {
		commands[i] = tgbotapi.BotCommand{
			Command:     strings.ToLower(c.Name),
			Description: c.Description,
		}
	}
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return fmt.Errorf("setting bot commands: %w", err)
	}
	return nil
}

// WebhookPath is the secret path Telegram posts updates to.
func (b *Bot) WebhookPath() string {
	return "/" + b.api.Token
}

// Handler returns the HTTP handler serving the webhook and health endpoints.
func (b *Bot) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(b.WebhookPath(), b.handleWebhook)
	mux.HandleFunc(HealthPath, handleHealth)
	return mux
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	update, err := b.api.HandleUpdate(r)
	if err != nil {
		logger.Warn("Rejected webhook request", logger.Fields{"error": err.Error()})
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.HandleUpdate(r.Context(), *update)
	w.WriteHeader(http.StatusOK)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"metrics": logger.GetMetricsSnapshot(),
	})
}

// HandleUpdate processes one update to completion. Errors are logged; the
// update is not retried.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	logger.IncrCounter("updates.received")
	if update.Message == nil {
		return
	}
	if err := b.router.HandleMessage(ctx, update.Message); err != nil {
		logger.IncrCounter("updates.failed")
		logger.Error("Failed to deliver reply", logger.Fields{
			"update_id": update.UpdateID,
			"chat_id":   update.Message.Chat.ID,
		}, err)
	}
}

// Webhook registers {publicURL}/{token} with Telegram and serves updates on
// addr until ctx is cancelled.
func (b *Bot) Webhook(ctx context.Context, addr, publicURL string) error {
	wh, err := tgbotapi.NewWebhook(strings.TrimSuffix(publicURL, "/") + b.WebhookPath())
	if err != nil {
		return fmt.Errorf("building webhook: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("setting webhook: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           b.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Webhook server shutdown failed", nil, err)
		}
	}()

	logger.Info("Webhook server listening", logger.Fields{"addr": addr, "public_url": publicURL})
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		logger.Info("Webhook server stopped", nil)
		return nil
	}
	return fmt.Errorf("webhook server: %w", err)
}

// Poll removes any webhook and receives updates by long polling until ctx is
// cancelled.
func (b *Bot) Poll(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("removing webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	logger.Info("Long polling started", logger.Fields{"bot": b.api.Self.UserName})
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info("Long polling stopped", nil)
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}
