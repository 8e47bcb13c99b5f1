package httptransport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vetgate/internal/i18n"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
)

// respondContentError adds the generic "could not load" toast when the
// platform itself failed; client-side errors stay bare.
func (h *handlers) respondContentError(w http.ResponseWriter, r *http.Request, err error) {
	if domainerrors.HasCode(err, domainerrors.CodeRemote) {
		h.deps.Notifier.Error(i18n.CodeContentFailed, "failed to load content")
	}
	h.respondError(w, r, err)
}

func (h *handlers) handleNewsList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	page, err := h.deps.Content.News(r.Context(), limit, offset, query.Get("category"))
	if err != nil {
		h.respondContentError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, page)
}

func (h *handlers) handleHomeNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.deps.Content.HomeNews(r.Context())
	if err != nil {
		h.respondContentError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, items)
}

func (h *handlers) handleNewsArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, domainerrors.New(domainerrors.CodeBadRequest, "article id must be a number"))
		return
	}
	article, err := h.deps.Content.Article(r.Context(), id)
	if err != nil {
		h.respondContentError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, article)
}

func (h *handlers) handlePrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.deps.Content.Programs(r.Context())
	if err != nil {
		h.respondContentError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, programs)
}

func (h *handlers) handleProgram(w http.ResponseWriter, r *http.Request) {
	authenticated := h.deps.Sessions != nil && h.deps.Sessions.Authenticated()
	detail, err := h.deps.Content.Program(r.Context(), chi.URLParam(r, "slug"), authenticated)
	if err != nil {
		h.respondContentError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, detail)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.deps.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.deps.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["session_store"] = err.Error()
			httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["session_store"] = "ok"
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
