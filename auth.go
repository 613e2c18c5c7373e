package outreach

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const sessionName = "admin_session"

// ErrInvalidCredentials is returned when a login does not match.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// Credentials are what the staff login form submits.
type Credentials struct {
	Username string
	Password string
}

// Session identifies an authenticated staff member.
type Session struct {
	Username string
}

// Authenticator checks staff credentials. Swap the implementation to put the
// admin area behind a real identity provider.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Session, error)
}

// StaticAuthenticator accepts a single configured username and bcrypt
// password hash.
type StaticAuthenticator struct {
	Username     string
	PasswordHash []byte
}

// NewStaticAuthenticator creates an authenticator for one staff account.
func NewStaticAuthenticator(username, passwordHash string) *StaticAuthenticator {
	return &StaticAuthenticator{Username: username, PasswordHash: []byte(passwordHash)}
}

// Authenticate compares creds against the configured account.
func (s *StaticAuthenticator) Authenticate(ctx context.Context, creds Credentials) (Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.Username)) == 1
	// Always run bcrypt so a wrong username costs as much as a wrong password.
	passErr := bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(creds.Password))
	if !userOK || passErr != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: s.Username}, nil
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// Login authenticates creds and, on success, stores the session cookie.
// It returns false with a nil error when the credentials do not match.
func Login(c echo.Context, auth Authenticator, creds Credentials) (bool, error) {
	sess, err := auth.Authenticate(c.Request().Context(), creds)
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := setAdminSession(c, sess); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the session cookie.
func Logout(c echo.Context) error {
	return clearAdminSession(c)
}

// IsAuthenticated checks if the current session is authenticated.
func IsAuthenticated(c echo.Context) bool {
	_, ok := CurrentSession(c)
	return ok
}

// CurrentSession returns the logged-in staff session, if any.
func CurrentSession(c echo.Context) (Session, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return Session{}, false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	if !ok || !auth {
		return Session{}, false
	}
	user, _ := sess.Values["username"].(string)
	return Session{Username: user}, true
}

func setAdminSession(c echo.Context, s Session) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	sess.Values["username"] = s.Username
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// requireAdmin redirects anonymous requests to the login page.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAuthenticated(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/login/")
		}
		return next(c)
	}
}
