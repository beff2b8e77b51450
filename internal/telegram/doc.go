// Package telegram formats replies for the Telegram Bot API and delivers them.
//
// Formatting helpers escape text for HTML parse mode, wrap tables in <pre> blocks
// and split long output so that no message exceeds Telegram's length limit.
// Delivery goes through the go-telegram-bot-api client behind the Sender interface
// so that handlers can be tested without a network.
package telegram
