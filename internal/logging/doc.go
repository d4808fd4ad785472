// Package logger provides leveled console logging for projfold.
//
// Verbosity is controlled by the --verbose and --debug persistent flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
// The zero value is a quiet logger that writes to the process stdout and
// stderr. Library packages hold a Logger value as a field so commands can
// pass the configured logger down:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	locator := folders.NewLocator(layout, log)
package logger
