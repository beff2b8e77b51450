package telegram

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxMessageLength is Telegram's limit for a single text message, in characters.
	MaxMessageLength = 4096

	preOpen  = "<pre>"
	preClose = "</pre>"
)

// EscapeHTML escapes the three characters Telegram's HTML parse mode reserves.
func EscapeHTML(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		switch r {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// Pre escapes text and wraps it in a <pre> block.
func Pre(text string) string {
	return preOpen + EscapeHTML(text) + preClose
}

// PreChunks is Pre for output that may exceed max characters: the text is split
// on line boundaries and every chunk is wrapped in its own <pre> block.
func PreChunks(text string, max int) []string {
	budget := max - utf8.RuneCountInString(preOpen+preClose)
	if budget < 1 {
		budget = 1
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		chunks = append(chunks, preOpen+current.String()+preClose)
		current.Reset()
		currentLen = 0
	}

	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		escaped := EscapeHTML(line)
		n := utf8.RuneCountInString(escaped)
		if currentLen+n <= budget {
			current.WriteString(escaped)
			currentLen += n
			continue
		}
		if currentLen > 0 {
			flush()
		}
		// copy rune by rune so that an overlong line is cut at the budget
		for _, r := range line {
			esc := EscapeHTML(string(r))
			n := utf8.RuneCountInString(esc)
			if currentLen > 0 && currentLen+n > budget {
				flush()
			}
			current.WriteString(esc)
			currentLen += n
		}
	}
	if currentLen > 0 || len(chunks) == 0 {
		flush()
	}
	return chunks
}

// Split breaks text into parts of at most max runes, preferring to cut after a
// newline in the second half of a part.
func Split(text string, max int) []string {
	if max < 1 {
		max = 1
	}
	runes := []rune(text)
	if len(runes) <= max {
		return []string{text}
	}

	var parts []string
	for len(runes) > max {
		cut := max
		for i := max - 1; i >= max/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
