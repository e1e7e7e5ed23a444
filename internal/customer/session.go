package customer

import (
	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// State is the customer session bootstrap phase.
type State int

const (
	// StateUnauthenticated means a config is loaded and the password
	// prompt is pending.
	StateUnauthenticated State = iota
	// StateAuthenticated means the password matched and the restricted
	// catalog may be served.
	StateAuthenticated
)

// Session gates a restricted catalog behind the configured password. The
// check is deliberately a plaintext equality against a client-visible
// value; it is a soft gate, not authentication. There is no attempt limit.
type Session struct {
	cfg   *Config
	state State
}

func NewSession(cfg *Config) *Session {
	return &Session{cfg: cfg, state: StateUnauthenticated}
}

func (s *Session) Config() *Config {
	return s.cfg
}

func (s *Session) State() State {
	return s.state
}

// Authenticate compares the entered password with the configured one.
// A mismatch leaves the session unauthenticated; retries are unlimited.
func (s *Session) Authenticate(entered string) bool {
	if entered == s.cfg.Password {
		s.state = StateAuthenticated
		return true
	}
	s.state = StateUnauthenticated
	return false
}

// FilterAllowed restricts records to the session's allowed styles. An
// empty allowed set means the whole catalog is visible.
func (s *Session) FilterAllowed(records []models.Record) []models.Record {
	if len(s.cfg.AllowedStyles) == 0 {
		return records
	}
	allowed := make(map[string]bool, len(s.cfg.AllowedStyles))
	for _, style := range s.cfg.AllowedStyles {
		allowed[style] = true
	}
	var out []models.Record
	for _, r := range records {
		if allowed[r.Style()] {
			out = append(out, r)
		}
	}
	return out
}
