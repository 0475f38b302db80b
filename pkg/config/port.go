package config

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// ListenTarget is where the HTTP server binds: a TCP port or a unix socket path.
type ListenTarget struct {
	Port int
	Pipe string
}

// NormalizePort interprets the PORT value. A value starting with an integer
// is a TCP port (trailing text is ignored, so "8080abc" is 8080), negative
// numbers fall back to the default port and anything else is a socket path.
func NormalizePort(val string) ListenTarget {
	if strings.TrimSpace(val) == "" {
		return ListenTarget{Port: defaultPort}
	}
	n, ok := leadingInt(val)
	if !ok {
		return ListenTarget{Pipe: val}
	}
	if n >= 0 {
		return ListenTarget{Port: n}
	}
	return ListenTarget{Port: defaultPort}
}

// leadingInt parses the optionally signed decimal prefix of s after leading
// whitespace. It reports false when no digits follow.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		// out of int range; no usable port either way
		return -1, true
	}
	return n, true
}

// IsPipe reports whether the target is a unix socket.
func (t ListenTarget) IsPipe() bool {
	return t.Pipe != ""
}

// Network returns the net.Listen network name.
func (t ListenTarget) Network() string {
	if t.IsPipe() {
		return "unix"
	}
	return "tcp"
}

// Address returns the net.Listen address for the given host.
func (t ListenTarget) Address(host string) string {
	if t.IsPipe() {
		return t.Pipe
	}
	return net.JoinHostPort(host, strconv.Itoa(t.Port))
}

// Bind describes the target for log lines, e.g. "Port 3000" or "Pipe /tmp/site.sock".
func (t ListenTarget) Bind() string {
	if t.IsPipe() {
		return "Pipe " + t.Pipe
	}
	return "Port " + strconv.Itoa(t.Port)
}

// String is the human-facing URL or socket path.
func (t ListenTarget) String() string {
	if t.IsPipe() {
		return t.Pipe
	}
	return "http://localhost:" + strconv.Itoa(t.Port)
}
