package playstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/playapi/playapi/device"
)

// Session holds the mutable state a client authenticates with: the auth
// token minted by login and the device identity (GSF id) minted by checkin.
// Both are long-lived and worth persisting by the caller; this layer never
// writes them to disk.
//
// A Session may be shared by concurrent catalog calls. Token and GSF id are
// guarded by a mutex; the auth flows are expected to run one at a time.
type Session struct {
	id      string
	profile device.Profile
	locale  string

	mu    sync.RWMutex
	token string
	gsfID string
}

// NewSession creates a session for the given device profile and locale
// (language_COUNTRY, e.g. "en_US"). The session starts unauthenticated.
func NewSession(profile device.Profile, locale string) *Session {
	return &Session{
		id:      uuid.NewString(),
		profile: profile,
		locale:  locale,
	}
}

// ID is a process-local correlation id used in logs. It is never sent to
// the server.
func (s *Session) ID() string {
	return s.id
}

// Profile returns the device profile the session was created with.
func (s *Session) Profile() device.Profile {
	return s.profile
}

// Locale returns the session locale as given, e.g. "en_US".
func (s *Session) Locale() string {
	return s.locale
}

// AcceptLanguage returns the locale in header form, e.g. "en-US".
func (s *Session) AcceptLanguage() string {
	return strings.ReplaceAll(s.locale, "_", "-")
}

// LanguageCountry splits the locale into its lowercased language and
// country parts, as the login endpoint expects them.
func (s *Session) LanguageCountry() (lang, country string) {
	lang, country, _ = strings.Cut(s.locale, "_")
	return strings.ToLower(lang), strings.ToLower(country)
}

// Token returns the auth token, or "" before login.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken installs a token minted by GenerateToken or restored by the
// caller from persisted state.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// GSFID returns the hex device identity, or "" before checkin.
func (s *Session) GSFID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gsfID
}

// SetGSFID installs a device identity minted by GenerateGSFID or restored
// by the caller from persisted state.
func (s *Session) SetGSFID(gsfID string) {
	s.mu.Lock()
	s.gsfID = gsfID
	s.mu.Unlock()
}
