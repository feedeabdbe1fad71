package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Config holds the server's runtime settings. Values are populated from
// flags and CHESSROOMS_* environment variables by the command layer.
type Config struct {
	Bind      string
	Port      int
	PublicURL string
	Verbose   bool
}

func Default() Config {
	return Config{
		Bind: "0.0.0.0",
		Port: 8080,
	}
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// BaseURL is the externally reachable base used in share links. Falls back
// to localhost when no public URL is configured.
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimSuffix(c.PublicURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// JoinURL is the link a client follows to join the given room.
func (c Config) JoinURL(roomID string) string {
	return c.BaseURL() + "/?room=" + roomID
}
