package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/events"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
)

type fakeRegistrar struct {
	err      error
	payloads []RegistrationPayload
	parts    [][]DocumentPart
	onCall   func()
}

func (f *fakeRegistrar) Register(_ context.Context, payload RegistrationPayload, documents []DocumentPart) error {
	if f.onCall != nil {
		f.onCall()
	}
	f.payloads = append(f.payloads, payload)
	f.parts = append(f.parts, documents)
	return f.err
}

type fakeAuthenticator struct {
	err         error
	identifiers []string
	passwords   []string
}

func (f *fakeAuthenticator) Login(_ context.Context, identifier, password string) error {
	f.identifiers = append(f.identifiers, identifier)
	f.passwords = append(f.passwords, password)
	return f.err
}

func validStepOne() Values {
	return Values{
		FieldFirstName:            "Andrii",
		FieldLastName:             "Shevchenko",
		FieldEmail:                "andrii@example.com",
		FieldPhone:                "+380501234567",
		FieldPassword:             "Abcdef12",
		FieldPasswordConfirmation: "Abcdef12",
	}
}

func validStepTwo() Values {
	return Values{
		FieldDateOfBirth: "1990-01-15",
		FieldRegion:      "kyiv",
		FieldCity:        "kyiv-city",
		FieldCategory:    "combat_participant",
	}
}

func validStepThree() Values {
	return Values{
		FieldAddress: "12 Khreshchatyk St, Kyiv",
	}
}

func newTestWizard(t *testing.T, opts Options) (*Wizard, *fakeRegistrar, *fakeAuthenticator, *notify.Notifier, *events.Bus) {
	t.Helper()
	registrar := &fakeRegistrar{}
	auth := &fakeAuthenticator{}
	notifier := notify.New()
	bus := events.NewBus(nil)
	w := New(opts, Deps{
		Registrar:     registrar,
		Authenticator: auth,
		Bus:           bus,
		Notifier:      notifier,
	})
	return w, registrar, auth, notifier, bus
}

func fillAllSteps(t *testing.T, w *Wizard) {
	t.Helper()
	_, err := w.SetStepValues(1, validStepOne(), false)
	require.NoError(t, err)
	_, err = w.SetStepValues(2, validStepTwo(), false)
	require.NoError(t, err)
	_, err = w.SetStepValues(3, validStepThree(), false)
	require.NoError(t, err)
	_, err = w.SetStepValues(5, Values{FieldTerms: true}, false)
	require.NoError(t, err)
}

func TestResetRestoresDefaults(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	fillAllSteps(t, w)
	_, err := w.SetStepValues(4, Values{FieldNotificationsEnabled: false, FieldSMSNotifications: true}, false)
	require.NoError(t, err)
	advanced, _ := w.NextStep()
	require.True(t, advanced)

	w.ResetForm()

	data := w.FormData()
	assert.Equal(t, "", data[FieldFirstName])
	assert.Equal(t, "", data[FieldEmail])
	assert.Equal(t, true, data[FieldNotificationsEnabled])
	assert.Equal(t, false, data[FieldEmailNotifications])
	assert.Equal(t, false, data[FieldSMSNotifications])
	assert.Equal(t, false, data[FieldTerms])
	assert.Nil(t, data[FieldMinorChildrenCount])
	assert.Empty(t, data[FieldDocuments])
	assert.Equal(t, 1, w.CurrentStep())
	for _, step := range w.Steps() {
		assert.False(t, step.Completed, "step %d", step.ID)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})
	fillAllSteps(t, w)

	w.ResetForm()
	first := w.FormData()
	w.ResetForm()
	assert.Equal(t, first, w.FormData())
}

func TestNextStepGatesOnValidation(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	advanced, errs := w.NextStep()
	assert.False(t, advanced)
	assert.Equal(t, 1, w.CurrentStep())
	assert.Contains(t, errs, FieldFirstName)
	assert.Contains(t, errs, FieldEmail)

	_, err := w.SetStepValues(1, validStepOne(), false)
	require.NoError(t, err)
	advanced, errs = w.NextStep()
	assert.True(t, advanced)
	assert.Empty(t, errs)
	// Never advances more than one step at a time.
	assert.Equal(t, 2, w.CurrentStep())
	assert.Equal(t, StatusCompleted, w.StepStatus(1))
}

func TestPreviousStepAlwaysMovesBack(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	assert.False(t, w.PreviousStep(), "no previous step from step 1")

	_, err := w.SetStepValues(1, validStepOne(), false)
	require.NoError(t, err)
	advanced, _ := w.NextStep()
	require.True(t, advanced)

	// Step 2 is empty and invalid, but moving back is free.
	assert.True(t, w.PreviousStep())
	assert.Equal(t, 1, w.CurrentStep())
	// Leaving an invalid step must not flash errors for its next visit.
	assert.Empty(t, w.StepErrors(2))
	// The completion flag still reflects the failed check.
	assert.NotEqual(t, StatusCompleted, w.StepStatus(2))
}

func TestGoToStepPolicy(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	fillAllSteps(t, w)
	for i := 0; i < 3; i++ {
		advanced, errs := w.NextStep()
		require.True(t, advanced, "errors: %v", errs)
	}
	require.Equal(t, 4, w.CurrentStep())
	require.True(t, w.GoToStep(3))
	require.Equal(t, 3, w.CurrentStep())

	// Steps 1..3 completed, pointer at 3.
	assert.False(t, w.GoToStep(5), "step 5 is locked")
	assert.Equal(t, 3, w.CurrentStep())
	assert.True(t, w.GoToStep(4), "next step with current completed")
	require.True(t, w.GoToStep(1), "backwards is always allowed")
	assert.Equal(t, 1, w.CurrentStep())
}

func TestStepStatusDerivation(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	assert.Equal(t, StatusActive, w.StepStatus(1))
	assert.Equal(t, StatusLocked, w.StepStatus(2))
	assert.Equal(t, StatusLocked, w.StepStatus(5))

	_, err := w.SetStepValues(1, validStepOne(), false)
	require.NoError(t, err)
	advanced, _ := w.NextStep()
	require.True(t, advanced)

	assert.Equal(t, StatusCompleted, w.StepStatus(1))
	assert.Equal(t, StatusActive, w.StepStatus(2))
	assert.Equal(t, StatusLocked, w.StepStatus(3))
}

func TestMutationsReachStoreWithoutNavigation(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	_, err := w.SetStepValues(1, Values{FieldFirstName: "Olena"}, false)
	require.NoError(t, err)

	assert.Equal(t, "Olena", w.FormData()[FieldFirstName])
}

func TestFormDataReturnsSnapshotNotLiveReference(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	snapshot := w.FormData()
	snapshot[FieldFirstName] = "mutated"

	assert.Equal(t, "", w.FormData()[FieldFirstName])
}

func TestReenteringStepKeepsPersistedValues(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{})

	_, err := w.SetStepValues(1, validStepOne(), false)
	require.NoError(t, err)
	advanced, _ := w.NextStep()
	require.True(t, advanced)
	require.True(t, w.PreviousStep())

	_, errs := w.NextStep()
	assert.Empty(t, errs, "persisted values survive re-entry")
	assert.Equal(t, 2, w.CurrentStep())
}

func TestSubmitRefusesIncompleteSteps(t *testing.T) {
	w, registrar, _, notifier, _ := newTestWizard(t, Options{})

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, registrar.payloads, "network must not be called")

	drained := notifier.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, i18n.CodeStepsIncomplete, drained[0].Code)
}

func TestSubmitHappyPath(t *testing.T) {
	w, registrar, auth, notifier, bus := newTestWizard(t, Options{})

	var published []events.Name
	bus.Subscribe("", func(name events.Name, _ events.Payload) {
		published = append(published, name)
	})

	fillAllSteps(t, w)
	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, registrar.payloads, 1)
	payload := registrar.payloads[0]
	assert.Equal(t, "andrii@example.com", payload.Email)
	assert.Equal(t, "+380501234567", payload.Phone)
	assert.True(t, payload.Terms)

	// Auto-login uses the just-submitted credentials.
	require.Len(t, auth.identifiers, 1)
	assert.Equal(t, "andrii@example.com", auth.identifiers[0])
	assert.Equal(t, "Abcdef12", auth.passwords[0])

	assert.Contains(t, published, events.SuccessRegister)

	// Terminal condition: the form resets.
	assert.Equal(t, "", w.FormData()[FieldFirstName])
	assert.Equal(t, 1, w.CurrentStep())

	drained := notifier.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, notify.KindSuccess, drained[0].Kind)
}

func TestSubmitAutoLoginFailureIsNonFatal(t *testing.T) {
	w, _, auth, notifier, bus := newTestWizard(t, Options{})
	auth.err = errors.New("invalid credentials")

	var published []events.Name
	bus.Subscribe("", func(name events.Name, _ events.Payload) {
		published = append(published, name)
	})

	fillAllSteps(t, w)
	require.NoError(t, w.Submit(context.Background()), "registration itself succeeded")

	assert.Contains(t, published, events.AutoLoginFailed)
	assert.Contains(t, published, events.SuccessRegister)
	assert.NotContains(t, published, events.FailedRegister)

	var kinds []notify.Kind
	for _, n := range notifier.Drain() {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, notify.KindWarning)
	assert.Contains(t, kinds, notify.KindSuccess)
}

func TestSubmitRegistrationFailure(t *testing.T) {
	w, registrar, auth, _, bus := newTestWizard(t, Options{})
	registrar.err = errors.New("email taken")

	var published []events.Name
	bus.Subscribe("", func(name events.Name, _ events.Payload) {
		published = append(published, name)
	})

	fillAllSteps(t, w)
	err := w.Submit(context.Background())
	require.Error(t, err)

	assert.Empty(t, auth.identifiers, "no auto-login after failed registration")
	assert.Contains(t, published, events.FailedRegister)
	// Form data survives so the user can correct and retry.
	assert.Equal(t, "Andrii", w.FormData()[FieldFirstName])
}

func TestSupersededSubmissionAppliesNoState(t *testing.T) {
	w, registrar, auth, _, bus := newTestWizard(t, Options{})

	var published []events.Name
	bus.Subscribe("", func(name events.Name, _ events.Payload) {
		published = append(published, name)
	})

	// The user abandons the wizard while the request is on the wire.
	registrar.onCall = func() { w.ResetForm() }

	fillAllSteps(t, w)
	require.NoError(t, w.Submit(context.Background()))

	assert.Empty(t, auth.identifiers, "stale completion must not log in")
	assert.NotContains(t, published, events.SuccessRegister)
}

func TestConcurrentSubmitRejected(t *testing.T) {
	w, registrar, _, _, _ := newTestWizard(t, Options{})

	entered := make(chan struct{})
	release := make(chan struct{})
	registrar.onCall = func() {
		close(entered)
		<-release
	}

	fillAllSteps(t, w)

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-entered

	err := w.Submit(context.Background())
	require.Error(t, err, "second submission while one is in flight")

	close(release)
	require.NoError(t, <-done)
}

func TestAddDocumentConstraints(t *testing.T) {
	w, _, _, _, _ := newTestWizard(t, Options{RequireDocuments: true})

	fe := w.AddDocument(DocumentPassport, FileUpload{
		Filename:    "scan.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf-bytes"),
	})
	assert.Nil(t, fe)

	fe = w.AddDocument(DocumentPassport, FileUpload{
		Filename:    "malware.exe",
		ContentType: "application/octet-stream",
		Data:        []byte{0x4d, 0x5a},
	})
	require.NotNil(t, fe)
	assert.Equal(t, i18n.CodeFileTypeInvalid, fe.Code)

	fe = w.AddDocument(DocumentOther, FileUpload{
		Filename:    "huge.pdf",
		ContentType: "application/pdf",
		Data:        make([]byte, MaxDocumentFileSize+1),
	})
	require.NotNil(t, fe)
	assert.Equal(t, i18n.CodeFileTooLarge, fe.Code)

	docs := documentsField(w.FormData())
	require.Len(t, docs, 1)
	assert.Equal(t, DocumentPassport, docs[0].Type)
	assert.Len(t, docs[0].Files, 1)
}
