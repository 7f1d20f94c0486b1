package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes fn and turns a panic into an error log instead of tearing the
// process down. Meant for goroutines spawned off a request.
func Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
