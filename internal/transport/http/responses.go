package httptransport

import (
	"errors"
	"net/http"

	"vetgate/internal/notify"
	"vetgate/internal/wizard"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
	"vetgate/pkg/requestcontext"
)

// envelope is the uniform response shape: the payload plus any user-facing
// notifications accumulated while handling the request.
type envelope struct {
	Data          any            `json:"data,omitempty"`
	Notifications []notification `json:"notifications,omitempty"`
}

type notification struct {
	Kind    notify.Kind `json:"kind"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

// fieldError is a wizard field error with its message resolved for the
// request's locale.
type fieldError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// respond writes data wrapped in the envelope, draining pending
// notifications and localizing them on the way out.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	httputil.WriteJSON(w, status, envelope{
		Data:          data,
		Notifications: h.drainNotifications(r),
	})
}

// errorEnvelope mirrors the error shape of httputil.WriteError with the
// pending notifications attached.
type errorEnvelope struct {
	Error         string         `json:"error"`
	Description   string         `json:"error_description,omitempty"`
	Notifications []notification `json:"notifications,omitempty"`
}

// respondError writes the error envelope; accumulated notifications still go
// out so the client can show what went wrong.
func (h *handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domainerrors.CodeOf(err)
	body := errorEnvelope{
		Error:         string(code),
		Notifications: h.drainNotifications(r),
	}
	if code != domainerrors.CodeInternal {
		var de *domainerrors.Error
		if errors.As(err, &de) {
			body.Description = de.Message
		}
	}
	httputil.WriteJSON(w, domainerrors.ToHTTPStatus(code), body)
}

func (h *handlers) drainNotifications(r *http.Request) []notification {
	if h.deps.Notifier == nil {
		return nil
	}
	pending := h.deps.Notifier.Drain()
	if len(pending) == 0 {
		return nil
	}
	locale := requestcontext.Locale(r.Context())
	out := make([]notification, 0, len(pending))
	for _, n := range pending {
		out = append(out, notification{
			Kind:    n.Kind,
			Code:    n.Code,
			Message: h.resolve(locale, n.Code, nil, n.Message),
		})
	}
	return out
}

// resolve localizes a message code, falling back to the prebuilt message when
// the catalog has no entry.
func (h *handlers) resolve(locale, code string, params map[string]any, fallback string) string {
	if h.deps.Translator == nil {
		return fallback
	}
	resolved := h.deps.Translator.Resolve(locale, code, params)
	if resolved == code && fallback != "" {
		return fallback
	}
	return resolved
}

// localizeFieldErrors converts wizard field errors into their response shape.
func (h *handlers) localizeFieldErrors(r *http.Request, errs map[string]wizard.FieldError) map[string]fieldError {
	if len(errs) == 0 {
		return nil
	}
	locale := requestcontext.Locale(r.Context())
	out := make(map[string]fieldError, len(errs))
	for field, fe := range errs {
		out[field] = fieldError{
			Code:    fe.Code,
			Message: h.resolve(locale, fe.Code, fe.Params, ""),
			Params:  fe.Params,
		}
	}
	return out
}
