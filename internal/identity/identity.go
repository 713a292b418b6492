// Package identity names the caller on requests to a tasksched server. The
// value travels in the X-Tasksched-Client header and appears in server logs.
package identity

import (
	"os"
	"os/user"
)

const (
	// FallbackUser is used when the user cannot be determined
	FallbackUser = "unknown"
	// FallbackHostname is used when the hostname cannot be determined
	FallbackHostname = "localhost"
)

// ClientID returns user@hostname for the current process.
func ClientID() string {
	return Format(currentUser(), hostname())
}

// Format joins usr and host, substituting fallbacks for empty values.
func Format(usr, host string) string {
	if usr == "" {
		usr = FallbackUser
	}
	if host == "" {
		host = FallbackHostname
	}
	return usr + "@" + host
}

// currentUser prefers $USER and falls back to the account database.
func currentUser() string {
	if usr := os.Getenv("USER"); usr != "" {
		return usr
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return ""
}
