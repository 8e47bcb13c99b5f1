// Package wizard implements the multi-step registration flow: the persistent
// form store, per-step validatable forms, the step navigator and the
// submission pipeline. One Wizard instance covers one registration session.
package wizard

// Field names. These match the platform API's registration payload keys.
const (
	// Step 1: identity.
	FieldFirstName            = "first_name"
	FieldLastName             = "last_name"
	FieldPatronymic           = "patronymic"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"

	// Step 2: demographics.
	FieldDateOfBirth        = "date_of_birth"
	FieldRegion             = "region"
	FieldCity               = "city"
	FieldCategory           = "category"
	FieldGender             = "gender"
	FieldMaritalStatus      = "marital_status"
	FieldActivityType       = "activity_type"
	FieldBio                = "bio"
	FieldHasMinorChildren   = "has_minor_children"
	FieldMinorChildrenCount = "minor_children_count"
	FieldDocuments          = "documents"

	// Step 3: emergency contact and address.
	FieldAddress               = "address"
	FieldEmergencyContactName  = "emergency_contact_name"
	FieldEmergencyContactPhone = "emergency_contact_phone"

	// Step 4: notification preferences.
	FieldNotificationsEnabled = "notifications_enabled"
	FieldEmailNotifications   = "email_notifications"
	FieldSMSNotifications     = "sms_notifications"

	// Step 5: confirmation.
	FieldTerms = "terms"
)

// StepCount is the number of wizard steps.
const StepCount = 5

// stepFields lists which fields belong to each step, in display order.
var stepFields = [StepCount + 1][]string{
	1: {
		FieldFirstName, FieldLastName, FieldPatronymic, FieldEmail,
		FieldPhone, FieldPassword, FieldPasswordConfirmation,
	},
	2: {
		FieldDateOfBirth, FieldRegion, FieldCity, FieldCategory,
		FieldGender, FieldMaritalStatus, FieldActivityType, FieldBio,
		FieldHasMinorChildren, FieldMinorChildrenCount, FieldDocuments,
	},
	3: {
		FieldAddress, FieldEmergencyContactName, FieldEmergencyContactPhone,
	},
	4: {
		FieldNotificationsEnabled, FieldEmailNotifications, FieldSMSNotifications,
	},
	5: {
		FieldTerms,
	},
}

// StepFields returns the field names owned by the given step.
func StepFields(step int) []string {
	if step < 1 || step > StepCount {
		return nil
	}
	out := make([]string, len(stepFields[step]))
	copy(out, stepFields[step])
	return out
}

// Values maps field names to their current value. Text fields hold string,
// toggles hold bool, minor_children_count holds int (or nil when unset) and
// documents holds []DocumentAttachment.
type Values map[string]any

// defaults returns the documented default for every field: empty string for
// text, true for notifications_enabled, false for the other booleans, nil for
// the optional count and an empty attachment list.
func defaults() Values {
	v := Values{}
	for step := 1; step <= StepCount; step++ {
		for _, field := range stepFields[step] {
			switch field {
			case FieldNotificationsEnabled:
				v[field] = true
			case FieldEmailNotifications, FieldSMSNotifications,
				FieldHasMinorChildren, FieldTerms:
				v[field] = false
			case FieldMinorChildrenCount:
				v[field] = nil
			case FieldDocuments:
				v[field] = []DocumentAttachment{}
			default:
				v[field] = ""
			}
		}
	}
	return v
}

// stringField reads v[field] as a string; non-strings read as "".
func stringField(v Values, field string) string {
	s, _ := v[field].(string)
	return s
}

// boolField reads v[field] as a bool; anything else reads as false.
func boolField(v Values, field string) bool {
	b, _ := v[field].(bool)
	return b
}

// intField reads v[field] as an int. JSON decoding produces float64, so both
// are accepted. ok is false when the field is unset or not numeric.
func intField(v Values, field string) (int, bool) {
	switch n := v[field].(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// documentsField reads the attachment list, tolerating an unset field.
func documentsField(v Values) []DocumentAttachment {
	docs, _ := v[FieldDocuments].([]DocumentAttachment)
	return docs
}

// copyValues returns a snapshot copy. The attachment slice is copied so the
// caller cannot mutate stored state through the snapshot.
func copyValues(src Values) Values {
	dst := make(Values, len(src))
	for field, value := range src {
		if docs, ok := value.([]DocumentAttachment); ok {
			copied := make([]DocumentAttachment, len(docs))
			copy(copied, docs)
			dst[field] = copied
			continue
		}
		dst[field] = value
	}
	return dst
}
