package auth

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/ybhavu/clinic-portal/internal/users"
)

// SessionName is the cookie holding the signed session payload.
const SessionName = "clinic_session"

const (
	keyUserID   = "user_id"
	keyUserType = "user_type"
)

// Identity is the logged-in account a browser's session resolves to.
type Identity struct {
	UserID uint
	Role   users.Role
}

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind    string // "success" or "error"
	Message string
}

func init() {
	gob.Register(Notice{})
}

// Establish drops any prior session state and binds the browser to the
// given account. Logging in over an existing session never reuses it.
func Establish(c *gin.Context, userID uint, role users.Role) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(keyUserID, userID)
	s.Set(keyUserType, string(role))
	return s.Save()
}

// ClearSession removes all session state. Safe to call when no session
// exists.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// Current reports the identity bound to the request's session, if any.
func Current(c *gin.Context) (Identity, bool) {
	s := sessions.Default(c)
	id, ok := s.Get(keyUserID).(uint)
	if !ok {
		return Identity{}, false
	}
	role, ok := s.Get(keyUserType).(string)
	if !ok {
		return Identity{}, false
	}
	return Identity{UserID: id, Role: users.Role(role)}, true
}

// Flash queues a notice for the next page render.
func Flash(c *gin.Context, kind, message string) {
	s := sessions.Default(c)
	s.AddFlash(Notice{Kind: kind, Message: message})
	if err := s.Save(); err != nil {
		_ = c.Error(err)
	}
}

// TakeFlashes returns queued notices and clears them.
func TakeFlashes(c *gin.Context) []Notice {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		_ = c.Error(err)
	}
	notices := make([]Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
