package utils

import (
	"os"
	"os/user"
)

// Identity names whoever runs a command, as recorded in the operation history.
type Identity struct {
	User string
	Host string
}

// CurrentIdentity looks up the user and host. The user falls back to $USER
// when the account database is unavailable, and either field may be empty.
func CurrentIdentity() Identity {
	var id Identity
	if u, err := user.Current(); err == nil && u.Username != "" {
		id.User = u.Username
	} else {
		id.User = os.Getenv("USER")
	}
	if host, err := os.Hostname(); err == nil {
		id.Host = host
	}
	return id
}
