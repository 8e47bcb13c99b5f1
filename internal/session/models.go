// Package session owns the authenticated-user state of the gateway: the
// token pair issued by the platform API, the cached user snapshot and the
// refresh lifecycle around them.
package session

import (
	"time"

	"vetgate/internal/remote"
)

// Session is the persisted authenticated state. One session is live at a
// time; RememberMe controls how long a persisted session survives a restart.
type Session struct {
	ID         string               `json:"id"`
	User       remote.User          `json:"user"`
	Tokens     remote.SessionTokens `json:"tokens"`
	RememberMe bool                 `json:"remember_me"`
	CreatedAt  time.Time            `json:"created_at"`
}
