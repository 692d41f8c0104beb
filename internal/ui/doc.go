// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, text decorations are used instead:
//
//	ui.Code.Sprint("kestrel keys list")   // `kestrel keys list`
//	ui.Highlight.Sprint("alice")          // 'alice'
//	ui.Muted.Sprint("identity")           // (identity)
//	ui.Key.Sprint(encodedPublicKey)       // unchanged
//
// Key output is never decorated so it can be copied verbatim.
package ui
