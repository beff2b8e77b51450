// Package render turns tabular replies into images.
//
// Table builds a small standalone HTML document; ImageClient sends it to the
// HTML/CSS to Image API, which returns the URL of a hosted PNG that Telegram
// can fetch directly.
package render
