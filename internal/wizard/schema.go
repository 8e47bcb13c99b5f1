package wizard

// Options selects between schema policy versions. The extended profile makes
// patronymic, the demographic selects and the emergency contact required;
// document requirement is an independent toggle.
type Options struct {
	ExtendedProfile  bool
	RequireDocuments bool
}

// Schema is the declarative ruleset for one step. Rules run in order per
// field; the first failing rule produces the field's error.
type Schema struct {
	Step  int
	rules map[string][]Rule
}

// Validate runs the schema against one step's values and returns every
// field's first failure. An empty slice means the step passes.
func (s Schema) Validate(values Values) []FieldError {
	var errs []FieldError
	for _, field := range stepFields[s.Step] {
		for _, rule := range s.rules[field] {
			if rule.Check(values[field], values) {
				continue
			}
			errs = append(errs, FieldError{Field: field, Code: rule.Code, Params: rule.Params})
			break
		}
	}
	return errs
}

// NewSchemas builds the five step schemas for the given policy options.
func NewSchemas(opts Options) [StepCount + 1]Schema {
	var schemas [StepCount + 1]Schema

	identity := map[string][]Rule{
		FieldFirstName: {required(), minLen(2), maxLen(50), personName()},
		FieldLastName:  {required(), minLen(2), maxLen(50), personName()},
		FieldEmail:     {required(), email(), maxLen(255)},
		FieldPhone:     {required(), phone(ukrainianPhonePattern)},
		FieldPassword:  {required(), passwordLength(), maxLen(128), passwordStrength()},
		FieldPasswordConfirmation: {
			required(), matchesField(FieldPassword),
		},
	}
	if opts.ExtendedProfile {
		identity[FieldPatronymic] = []Rule{required(), minLen(2), maxLen(50), personName()}
	} else {
		identity[FieldPatronymic] = []Rule{minLen(2), maxLen(50), personName()}
	}
	schemas[1] = Schema{Step: 1, rules: identity}

	demographics := map[string][]Rule{
		FieldDateOfBirth:        {required()},
		FieldRegion:             {required()},
		FieldCity:               {required()},
		FieldCategory:           {required()},
		FieldBio:                {maxLen(1000)},
		FieldMinorChildrenCount: {minorChildrenRequired(), minorChildrenCount()},
	}
	if opts.ExtendedProfile {
		demographics[FieldGender] = []Rule{required()}
		demographics[FieldMaritalStatus] = []Rule{required()}
		demographics[FieldActivityType] = []Rule{required()}
	}
	if opts.RequireDocuments {
		demographics[FieldDocuments] = []Rule{documentsPresent()}
	}
	schemas[2] = Schema{Step: 2, rules: demographics}

	emergency := map[string][]Rule{
		FieldAddress: {required(), minLen(10), maxLen(200)},
	}
	if opts.ExtendedProfile {
		emergency[FieldEmergencyContactName] = []Rule{required(), minLen(2), maxLen(100)}
		emergency[FieldEmergencyContactPhone] = []Rule{required(), phone(internationalPhonePattern)}
	} else {
		// Optional contacts: the phone format is enforced only when non-empty.
		emergency[FieldEmergencyContactName] = []Rule{minLen(2), maxLen(100)}
		emergency[FieldEmergencyContactPhone] = []Rule{phone(internationalPhonePattern)}
	}
	schemas[3] = Schema{Step: 3, rules: emergency}

	// Notification preferences are all booleans with defaults; nothing to
	// enforce beyond type, which the store guarantees.
	schemas[4] = Schema{Step: 4, rules: map[string][]Rule{}}

	schemas[5] = Schema{Step: 5, rules: map[string][]Rule{
		FieldTerms: {mustBeTrue()},
	}}

	return schemas
}
