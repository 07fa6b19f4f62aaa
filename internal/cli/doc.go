// Package cli implements the interactive prompt.
//
// A line starting with "/" is a command (/watch, /save, /load, /list, /top,
// /trending, /help, /exit). Any other non-empty line is looked up as a
// single asset and printed in the detail view.
//
// A /watch (or /load) blocks the prompt until the watch session ends. While
// it runs, a keypress listener shares stdin with nothing else; the prompt
// does not read again until the session and the listener have both returned.
package cli
