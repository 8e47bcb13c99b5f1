package httptransport

import (
	"net/http"
	"strings"

	"vetgate/internal/remote"
	"vetgate/internal/session"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
)

type loginRequest struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type userView struct {
	User    remote.User     `json:"user"`
	Display session.Display `json:"display"`
}

func (h *handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[loginRequest](r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		h.respondError(w, r, domainerrors.New(domainerrors.CodeBadRequest, "login and password required"))
		return
	}

	user, err := h.deps.Sessions.Login(r.Context(), req.Login, req.Password, req.RememberMe)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, userView{User: user, Display: session.DisplayOf(user)})
}

func (h *handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.deps.Sessions.Logout(r.Context())
	h.respond(w, r, http.StatusOK, map[string]bool{"logged_out": true})
}

type meView struct {
	remote.Me
	Display session.Display `json:"display"`
}

func (h *handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	me, err := h.deps.Sessions.Profile(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, meView{Me: me, Display: session.DisplayOf(me.Profile)})
}
