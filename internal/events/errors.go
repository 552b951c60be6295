package events

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// DaemonErrorKind tells callers why live updates are unavailable.
type DaemonErrorKind string

const (
	DaemonSocketMissing DaemonErrorKind = "socket_missing"
	DaemonSocketDenied  DaemonErrorKind = "socket_denied"
	DaemonRefused       DaemonErrorKind = "refused"
	DaemonUnreachable   DaemonErrorKind = "unreachable"
)

// DaemonError describes a failed daemon connection in terms a user can act on.
type DaemonError struct {
	Kind    DaemonErrorKind
	Socket  string
	Message string
	Hint    string
	Err     error
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *DaemonError) Unwrap() error { return e.Err }

// ClassifyDaemonError turns a dial or connect error for socket into a
// DaemonError. It returns nil for a nil err.
func ClassifyDaemonError(err error, socket string) *DaemonError {
	if err == nil {
		return nil
	}

	de := &DaemonError{Socket: socket, Err: err}

	var errno syscall.Errno
	switch {
	case errors.Is(err, os.ErrNotExist):
		de.Kind = DaemonSocketMissing
		de.Message = fmt.Sprintf("No daemon socket at %s", socket)
		de.Hint = "Start it with: partners daemon start"
	case errors.Is(err, os.ErrPermission):
		de.Kind = DaemonSocketDenied
		de.Message = fmt.Sprintf("Permission denied on %s", socket)
		de.Hint = "The socket directory must be owned by you with mode 0700"
	case errors.As(err, &errno) && errno == syscall.ECONNREFUSED:
		de.Kind = DaemonRefused
		de.Message = "Daemon refused the connection"
		de.Hint = "It may have crashed. Restart it with: partners daemon start"
	default:
		de.Kind = DaemonUnreachable
		de.Message = "Daemon not reachable"
		de.Hint = "Start it with: partners daemon start"
	}
	return de
}
