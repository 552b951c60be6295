// Package user resolves the OS account that owns a local partners store.
package user

import (
	"os"
	osuser "os/user"
	"strings"
)

// Identity is the OS account the local store runs as.
type Identity struct {
	UID      string
	Username string
	Email    string // username@host.local
}

// source is the set of OS lookups Current depends on.
type source struct {
	current  func() (*osuser.User, error)
	getenv   func(string) string
	hostname func() (string, error)
}

var osSource = source{
	current:  osuser.Current,
	getenv:   os.Getenv,
	hostname: os.Hostname,
}

// Current returns the identity of the running OS user. It never returns
// empty fields: USER and then "unknown" stand in for the username, and
// the username stands in for the UID.
func Current() Identity {
	return osSource.identity()
}

func (s source) identity() Identity {
	var id Identity
	if u, err := s.current(); err == nil {
		id.UID = u.Uid
		id.Username = u.Username
	}
	if id.Username == "" {
		id.Username = s.getenv("USER")
	}
	if id.Username == "" {
		id.Username = "unknown"
	}
	if id.UID == "" {
		id.UID = id.Username
	}

	host, err := s.hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	host, _, _ = strings.Cut(host, ".")
	id.Email = id.Username + "@" + host + ".local"
	return id
}
