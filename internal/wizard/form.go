package wizard

// Form is one step's validatable context. It holds that step's current values
// and field errors; every mutation is mirrored into the persistent store
// through the onChange hook so the store never lags behind the active form.
type Form struct {
	schema    Schema
	values    Values
	errors    map[string]FieldError
	validated bool
	lastValid bool
	onChange  func(Values)
}

func newForm(schema Schema, initial Values, onChange func(Values)) *Form {
	values := Values{}
	for _, field := range stepFields[schema.Step] {
		values[field] = initial[field]
	}
	return &Form{
		schema:   schema,
		values:   values,
		errors:   map[string]FieldError{},
		onChange: onChange,
	}
}

// SetValues merges values into the form and mirrors them into the persistent
// store. With triggerValidation the step's schema runs immediately and field
// errors refresh; otherwise existing errors stay as they are.
func (f *Form) SetValues(values Values, triggerValidation bool) bool {
	for _, field := range stepFields[f.schema.Step] {
		if value, ok := values[field]; ok {
			f.values[field] = value
		}
	}
	if f.onChange != nil {
		f.onChange(f.Values())
	}
	if triggerValidation {
		return f.Validate()
	}
	return len(f.errors) == 0
}

// setSilent overwrites the form's values from the store without firing
// onChange and without validating. Used when re-entering a step so untouched
// data does not flash errors.
func (f *Form) setSilent(values Values) {
	for _, field := range stepFields[f.schema.Step] {
		if value, ok := values[field]; ok {
			f.values[field] = value
		}
	}
}

// Validate runs the step schema against current values and replaces the
// field errors.
func (f *Form) Validate() bool {
	f.errors = map[string]FieldError{}
	for _, fe := range f.schema.Validate(f.values) {
		f.errors[fe.Field] = fe
	}
	f.validated = true
	f.lastValid = len(f.errors) == 0
	return f.lastValid
}

// check runs the schema against current values without touching the
// displayed errors. Completion tracking uses this so leaving a half-filled
// step does not flash errors when the user returns.
func (f *Form) check() bool {
	return len(f.schema.Validate(f.values)) == 0
}

// Valid reports whether the last validation passed. False until the form has
// been validated at least once.
func (f *Form) Valid() bool {
	return f.validated && f.lastValid
}

// Values returns a copy of the form's current values.
func (f *Form) Values() Values {
	return copyValues(f.values)
}

// Errors returns the current field errors keyed by field name.
func (f *Form) Errors() map[string]FieldError {
	out := make(map[string]FieldError, len(f.errors))
	for field, fe := range f.errors {
		out[field] = fe
	}
	return out
}

// reset restores the step's defaults and clears errors.
func (f *Form) reset() {
	all := defaults()
	for _, field := range stepFields[f.schema.Step] {
		f.values[field] = all[field]
	}
	f.errors = map[string]FieldError{}
	f.validated = false
	f.lastValid = false
}
