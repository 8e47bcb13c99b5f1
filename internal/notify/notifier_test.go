package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainReturnsAndClears(t *testing.T) {
	n := New()
	n.Error("auth.login_failed", "Login failed")
	n.Warning("auth.auto_login_failed", "Registered, but automatic sign-in failed")

	got := n.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, KindError, got[0].Kind)
	assert.Equal(t, "auth.login_failed", got[0].Code)
	assert.Equal(t, KindWarning, got[1].Kind)

	assert.Empty(t, n.Drain())
}
