package wizard

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"vetgate/internal/events"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
	"vetgate/internal/platform/metrics"
	domainerrors "vetgate/pkg/domain-errors"
)

// Deps are the collaborators a wizard session publishes to. Registrar and
// Authenticator are required for Submit; the rest are optional and nil-safe.
type Deps struct {
	Registrar     Registrar
	Authenticator Authenticator
	Bus           *events.Bus
	Notifier      *notify.Notifier
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// Wizard owns one registration session: the persistent store, the five step
// forms, the navigator and the submission state. Every consumer shares the
// one instance it is handed.
//
// A mutex serializes access because HTTP requests for the same session may
// arrive concurrently; within one operation the ordering guarantee is
// sync-to-store, then validate, then navigate.
type Wizard struct {
	mu   sync.Mutex
	opts Options
	deps Deps

	store *Store
	forms [StepCount + 1]*Form
	nav   *navigator

	inFlight bool
	// generation invalidates in-flight submissions: a completion whose
	// captured generation no longer matches applies no state.
	generation uint64
}

func New(opts Options, deps Deps) *Wizard {
	w := &Wizard{
		opts:  opts,
		deps:  deps,
		store: NewStore(),
		nav:   newNavigator(),
	}
	schemas := NewSchemas(opts)
	initial := w.store.GetFormData()
	for step := 1; step <= StepCount; step++ {
		w.forms[step] = newForm(schemas[step], initial, w.store.SetStepData)
	}
	if deps.Metrics != nil {
		deps.Metrics.RegistrationsStarted.Inc()
	}
	return w
}

// SetStepValues merges values into a step's form (mirroring them into the
// store) and optionally validates. Returns the step's current field errors.
func (w *Wizard) SetStepValues(step int, values Values, triggerValidation bool) (map[string]FieldError, error) {
	if step < 1 || step > StepCount {
		return nil, domainerrors.Newf(domainerrors.CodeBadRequest, "step %d out of range", step)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	form := w.forms[step]
	if !form.SetValues(values, triggerValidation) && w.deps.Metrics != nil && triggerValidation {
		w.deps.Metrics.StepValidationFailures.WithLabelValues(strconv.Itoa(step)).Inc()
	}
	return form.Errors(), nil
}

// AddDocument validates and stores one uploaded file under the given document
// type, then refreshes the step-2 form from the store.
func (w *Wizard) AddDocument(docType DocumentType, file FileUpload) *FieldError {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fe := CheckUpload(file, countFiles(w.store.Documents())); fe != nil {
		return fe
	}
	w.store.AppendDocumentFile(docType, file)
	w.forms[2].setSilent(w.store.StepValues(2))
	return nil
}

// validateForCompletion syncs the step's form into the store, checks the
// schema and updates the completion flag. It does not touch the form's
// displayed errors.
func (w *Wizard) validateForCompletion(step int) bool {
	form := w.forms[step]
	w.store.SetStepData(form.Values())
	ok := form.check()
	w.nav.setCompleted(step, ok)
	if !ok && w.deps.Metrics != nil {
		w.deps.Metrics.StepValidationFailures.WithLabelValues(strconv.Itoa(step)).Inc()
	}
	return ok
}

// NextStep validates the current step for completion. On success it advances
// the pointer and silently syncs the newly active form from the store; on
// failure it populates the form's errors for display and stays put.
func (w *Wizard) NextStep() (bool, map[string]FieldError) {
	w.mu.Lock()
	defer w.mu.Unlock()
	current := w.nav.current
	if !w.validateForCompletion(current) {
		w.forms[current].Validate()
		return false, w.forms[current].Errors()
	}
	if current < StepCount {
		w.nav.current = current + 1
		w.forms[w.nav.current].setSilent(w.store.StepValues(w.nav.current))
	}
	return true, nil
}

// PreviousStep moves back one step. The step being left is still validated
// for completion to keep its flag accurate, but a failure never blocks the
// move.
func (w *Wizard) PreviousStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.nav.current <= 1 {
		return false
	}
	w.validateForCompletion(w.nav.current)
	w.nav.current--
	w.forms[w.nav.current].setSilent(w.store.StepValues(w.nav.current))
	return true
}

// GoToStep jumps to a reachable step; unreachable targets are a no-op and
// return false. The step being left is synced into the store (unvalidated)
// so edits survive the jump.
func (w *Wizard) GoToStep(target int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.nav.canGoTo(target) {
		return false
	}
	if target == w.nav.current {
		return true
	}
	w.store.SetStepData(w.forms[w.nav.current].Values())
	w.nav.current = target
	w.forms[target].setSilent(w.store.StepValues(target))
	return true
}

// StepStatus derives a step's display state.
func (w *Wizard) StepStatus(step int) StepStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.status(step)
}

// CurrentStep returns the step pointer.
func (w *Wizard) CurrentStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.current
}

// Steps returns a copy of the step definitions with completion flags.
func (w *Wizard) Steps() []Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.snapshot()
}

// StepErrors returns the displayed errors for one step.
func (w *Wizard) StepErrors(step int) map[string]FieldError {
	if step < 1 || step > StepCount {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.forms[step].Errors()
}

// FormData returns a snapshot of the persistent store.
func (w *Wizard) FormData() Values {
	return w.store.GetFormData()
}

// InFlight reports whether a submission is currently running.
func (w *Wizard) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// ResetForm restores defaults, moves the pointer to 1, clears completion
// flags and supersedes any in-flight submission.
func (w *Wizard) ResetForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Wizard) resetLocked() {
	w.store.Reset()
	w.nav.reset()
	for step := 1; step <= StepCount; step++ {
		w.forms[step].reset()
	}
	w.generation++
}

// Submit is the final gate: every step must validate, then the payload goes
// out as register, auto-login, fetch-profile. Auto-login failure degrades to
// a warning; registration is still a success and the form resets. A
// submission superseded by a reset applies no state on completion.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return domainerrors.New(domainerrors.CodeConflict, "submission already in flight")
	}
	for step := 1; step <= StepCount; step++ {
		if !w.validateForCompletion(step) {
			w.forms[step].Validate()
			w.mu.Unlock()
			w.notifyError(i18n.CodeStepsIncomplete)
			return domainerrors.Newf(domainerrors.CodeValidation, "step %d is incomplete", step)
		}
	}
	payload, documents := assemblePayload(w.store.GetFormData())
	w.inFlight = true
	generation := w.generation
	w.mu.Unlock()

	err := w.deps.Registrar.Register(ctx, payload, documents)

	w.mu.Lock()
	w.inFlight = false
	stale := generation != w.generation
	w.mu.Unlock()
	if stale {
		// Superseded by a reset; drop the completion without touching state.
		w.logWarn("dropping stale submission completion")
		return nil
	}
	if err != nil {
		w.notifyError(i18n.CodeRegisterFailed)
		w.publish(events.FailedRegister, events.Payload{"error": err.Error()})
		return domainerrors.Wrap(err, domainerrors.CodeOf(err), "registration rejected")
	}
	if w.deps.Metrics != nil {
		w.deps.Metrics.RegistrationsCompleted.Inc()
	}

	// The register response carries no session token, so authenticate with
	// the just-submitted credentials and pull the full profile.
	if err := w.deps.Authenticator.Login(ctx, payload.Identifier(), payload.Password); err != nil {
		w.logWarn("auto-login after registration failed", "error", err)
		if w.deps.Notifier != nil {
			w.deps.Notifier.Warning(i18n.CodeAutoLoginFailed, "registered, but automatic sign-in failed")
		}
		w.publish(events.AutoLoginFailed, events.Payload{"error": err.Error()})
	}

	w.mu.Lock()
	if generation == w.generation {
		w.resetLocked()
	}
	w.mu.Unlock()

	if w.deps.Notifier != nil {
		w.deps.Notifier.Success(i18n.CodeRegisterSuccess, "registration completed")
	}
	w.publish(events.SuccessRegister, nil)
	return nil
}

func (w *Wizard) notifyError(code string) {
	if w.deps.Notifier != nil {
		w.deps.Notifier.Error(code, code)
	}
}

func (w *Wizard) publish(name events.Name, payload events.Payload) {
	if w.deps.Bus != nil {
		w.deps.Bus.Publish(name, payload)
	}
}

func (w *Wizard) logWarn(msg string, args ...any) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(msg, args...)
	}
}
