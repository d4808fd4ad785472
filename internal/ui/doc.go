// Package ui provides semantic text formatting for projfold output.
//
// Formatters colorize content when the terminal supports it and fall back
// to plain-text decorations when NO_COLOR is set or colors are unavailable:
//
//	ui.Code.Sprint("projfold folder validate")  // `backticks` without color
//	ui.Path.Sprint("/projects/11 Current")      // no decoration
//	ui.Root.Sprint("11 Current")                // [brackets]
//	ui.Status.Sprint("Awarded")                 // 'quotes'
//	ui.Muted.Sprint("skipped")                  // (parentheses)
//
// The marker helpers (Tick, Cross, Arrow, Bang) return the glyphs used at
// the start of result lines.
package ui
