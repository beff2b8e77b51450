// Package quote fetches a random quote from the ZenQuotes API and formats it for
// a chat reply. Every failure collapses into one of two static messages so the
// caller always has something to send.
package quote
