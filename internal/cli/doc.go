// Package cli implements the command-line interface for canoebot.
//
// The cli package provides the Cobra-based CLI: serve and poll run the Telegram
// bot, while week, quote, boats and attendance perform a single lookup and print
// it as text or JSON. It loads configuration, installs the logger and wires the
// sheets, quote, render and bot packages together.
package cli
