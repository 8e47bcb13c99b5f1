package httptransport

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"vetgate/internal/i18n"
	"vetgate/internal/wizard"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
)

// EmailChecker asks the platform whether an email is still free.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
}

// Fields never echoed back in snapshots.
var redactedFields = map[string]bool{
	wizard.FieldPassword:             true,
	wizard.FieldPasswordConfirmation: true,
}

type stepView struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      wizard.StepStatus `json:"status"`
}

type snapshotView struct {
	CurrentStep int                              `json:"current_step"`
	Steps       []stepView                       `json:"steps"`
	FormData    wizard.Values                    `json:"form_data"`
	Errors      map[string]map[string]fieldError `json:"errors,omitempty"`
	InFlight    bool                             `json:"in_flight"`
}

func (h *handlers) handleRegistrationSnapshot(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.snapshot(r))
}

func (h *handlers) snapshot(r *http.Request) snapshotView {
	wz := h.deps.Wizard

	steps := wz.Steps()
	views := make([]stepView, 0, len(steps))
	for _, step := range steps {
		views = append(views, stepView{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Status:      wz.StepStatus(step.ID),
		})
	}

	data := wz.FormData()
	for field := range redactedFields {
		delete(data, field)
	}

	allErrors := make(map[string]map[string]fieldError)
	for step := 1; step <= wizard.StepCount; step++ {
		if localized := h.localizeFieldErrors(r, wz.StepErrors(step)); localized != nil {
			allErrors[strconv.Itoa(step)] = localized
		}
	}
	if len(allErrors) == 0 {
		allErrors = nil
	}

	return snapshotView{
		CurrentStep: wz.CurrentStep(),
		Steps:       views,
		FormData:    data,
		Errors:      allErrors,
		InFlight:    wz.InFlight(),
	}
}

type setStepRequest struct {
	Values   wizard.Values `json:"values"`
	Validate bool          `json:"validate"`
}

type stepResultView struct {
	Moved       bool                  `json:"moved"`
	CurrentStep int                   `json:"current_step"`
	Errors      map[string]fieldError `json:"errors,omitempty"`
}

func (h *handlers) handleSetStep(w http.ResponseWriter, r *http.Request) {
	step, err := stepParam(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	req, err := httputil.Decode[setStepRequest](r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	errs, err := h.deps.Wizard.SetStepValues(step, req.Values, req.Validate)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, stepResultView{
		Moved:       false,
		CurrentStep: h.deps.Wizard.CurrentStep(),
		Errors:      h.localizeFieldErrors(r, errs),
	})
}

func (h *handlers) handleNextStep(w http.ResponseWriter, r *http.Request) {
	moved, errs := h.deps.Wizard.NextStep()
	h.respond(w, r, http.StatusOK, stepResultView{
		Moved:       moved,
		CurrentStep: h.deps.Wizard.CurrentStep(),
		Errors:      h.localizeFieldErrors(r, errs),
	})
}

func (h *handlers) handlePreviousStep(w http.ResponseWriter, r *http.Request) {
	moved := h.deps.Wizard.PreviousStep()
	h.respond(w, r, http.StatusOK, stepResultView{
		Moved:       moved,
		CurrentStep: h.deps.Wizard.CurrentStep(),
	})
}

func (h *handlers) handleGoToStep(w http.ResponseWriter, r *http.Request) {
	step, err := stepParam(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	moved := h.deps.Wizard.GoToStep(step)
	h.respond(w, r, http.StatusOK, stepResultView{
		Moved:       moved,
		CurrentStep: h.deps.Wizard.CurrentStep(),
	})
}

const maxUploadBytes = int64(wizard.MaxDocumentFiles) * wizard.MaxDocumentFileSize

type uploadResultView struct {
	Accepted int                   `json:"accepted"`
	Errors   map[string]fieldError `json:"errors,omitempty"`
}

// handleUploadDocuments takes a multipart form: a `type` field naming the
// document type and one or more `files` parts.
func (h *handlers) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respondError(w, r, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "invalid multipart form"))
		return
	}
	docType := wizard.DocumentType(r.FormValue("type"))
	if docType == "" {
		h.respondError(w, r, domainerrors.New(domainerrors.CodeBadRequest, "document type required"))
		return
	}

	accepted := 0
	errs := make(map[string]fieldError)
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			h.respondError(w, r, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "unreadable file part"))
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			h.respondError(w, r, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "unreadable file part"))
			return
		}

		upload := wizard.FileUpload{
			Filename:    header.Filename,
			ContentType: contentTypeOf(header.Header.Get("Content-Type"), header.Filename),
			Data:        data,
		}
		if fe := h.deps.Wizard.AddDocument(docType, upload); fe != nil {
			localized := h.localizeFieldErrors(r, map[string]wizard.FieldError{header.Filename: *fe})
			errs[header.Filename] = localized[header.Filename]
			continue
		}
		accepted++
	}
	if len(errs) == 0 {
		errs = nil
	}

	h.respond(w, r, http.StatusOK, uploadResultView{Accepted: accepted, Errors: errs})
}

func (h *handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Wizard.Submit(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]bool{"registered": true})
}

func (h *handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.deps.Wizard.ResetForm()
	h.respond(w, r, http.StatusOK, h.snapshot(r))
}

func (h *handlers) handleEmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.respondError(w, r, domainerrors.New(domainerrors.CodeBadRequest, "email required"))
		return
	}
	if h.deps.EmailCheck == nil {
		h.respondError(w, r, domainerrors.New(domainerrors.CodeInternal, "email check not configured"))
		return
	}
	available, err := h.deps.EmailCheck.CheckEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !available {
		h.deps.Notifier.Warning(i18n.CodeEmailTaken, "email already registered")
	}
	h.respond(w, r, http.StatusOK, map[string]bool{"available": available})
}

func stepParam(r *http.Request) (int, error) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil || step < 1 || step > wizard.StepCount {
		return 0, domainerrors.New(domainerrors.CodeBadRequest, "step must be between 1 and 5")
	}
	return step, nil
}

// contentTypeOf strips multipart parameters and falls back on the filename
// extension when the client sent no type.
func contentTypeOf(header, filename string) string {
	if header != "" {
		if i := strings.IndexByte(header, ';'); i >= 0 {
			header = header[:i]
		}
		return strings.TrimSpace(header)
	}
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(strings.ToLower(filename), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(filename), ".jpg"),
		strings.HasSuffix(strings.ToLower(filename), ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
