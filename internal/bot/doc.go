// Package bot routes Telegram messages to command handlers and runs the bot
// either behind a webhook or with long polling.
//
// Commands are looked up case-insensitively in a dispatch table. Anything that
// is not a registered command, including plain text, is echoed back. A handler
// that fails is logged and answered with a fixed apology; updates are never
// retried.
package bot
