// Package render formats market data as terminal text.
//
// Formatting is pure: every function takes values and returns strings.
// Colour is applied only when the caller asks for it (see AutoColor).
package render
