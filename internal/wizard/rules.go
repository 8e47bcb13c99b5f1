package wizard

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"vetgate/internal/i18n"
)

// FieldError is one failed field rule. Code is a stable message key resolved
// through the translation layer; Params fill its placeholders.
type FieldError struct {
	Field  string         `json:"field"`
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// Rule is a single field predicate. Check receives the field's value and the
// whole step's values so cross-field rules (password confirmation, conditional
// requiredness) can see their siblings.
type Rule struct {
	Code   string
	Params map[string]any
	Check  func(value any, all Values) bool
}

// Phone patterns: the primary contact number must be a national mobile number;
// emergency contacts accept any international format.
const (
	ukrainianPhonePattern     = `^\+380\d{9}$`
	internationalPhonePattern = `^\+?[1-9]\d{0,15}$`
)

const namePattern = `^[a-zA-Zа-яА-ЯіІїЇєЄґҐ'\-\s]+$`

func isBlank(value any) bool {
	s, ok := value.(string)
	return !ok || strings.TrimSpace(s) == ""
}

func required() Rule {
	return Rule{
		Code: i18n.CodeRequired,
		Check: func(value any, _ Values) bool {
			return !isBlank(value)
		},
	}
}

// minLen skips blank values so optional fields only enforce length when set.
func minLen(min int) Rule {
	return Rule{
		Code:   i18n.CodeMinLength,
		Params: map[string]any{"min": min},
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return len([]rune(strings.TrimSpace(value.(string)))) >= min
		},
	}
}

func maxLen(max int) Rule {
	return Rule{
		Code:   i18n.CodeMaxLength,
		Params: map[string]any{"max": max},
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return len([]rune(value.(string))) <= max
		},
	}
}

func email() Rule {
	return Rule{
		Code: i18n.CodeEmailInvalid,
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return govalidator.IsEmail(value.(string))
		},
	}
}

func phone(pattern string) Rule {
	return Rule{
		Code: i18n.CodePhoneInvalid,
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return govalidator.Matches(value.(string), pattern)
		},
	}
}

func personName() Rule {
	return Rule{
		Code: i18n.CodeNameInvalid,
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return govalidator.Matches(value.(string), namePattern)
		},
	}
}

func passwordLength() Rule {
	return Rule{
		Code:   i18n.CodePasswordTooShort,
		Params: map[string]any{"min": 8},
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			return len(value.(string)) >= 8
		},
	}
}

// passwordStrength requires at least one uppercase letter, one lowercase
// letter and one digit.
func passwordStrength() Rule {
	return Rule{
		Code: i18n.CodePasswordTooWeak,
		Check: func(value any, _ Values) bool {
			if isBlank(value) {
				return true
			}
			s := value.(string)
			return govalidator.HasUpperCase(s) && govalidator.HasLowerCase(s) &&
				strings.ContainsAny(s, "0123456789")
		},
	}
}

// matchesField fails when the value differs from the sibling field's current
// value in the same submission.
func matchesField(sibling string) Rule {
	return Rule{
		Code: i18n.CodePasswordsNotMatch,
		Check: func(value any, all Values) bool {
			s, _ := value.(string)
			return s == stringField(all, sibling)
		},
	}
}

func mustBeTrue() Rule {
	return Rule{
		Code: i18n.CodeTermsNotAccepted,
		Check: func(value any, _ Values) bool {
			b, ok := value.(bool)
			return ok && b
		},
	}
}

// minorChildrenRequired fires when has_minor_children is set but no count
// was entered. Without the toggle the field is ignored entirely.
func minorChildrenRequired() Rule {
	return Rule{
		Code: i18n.CodeChildrenCountReq,
		Check: func(_ any, all Values) bool {
			if !boolField(all, FieldHasMinorChildren) {
				return true
			}
			_, ok := intField(all, FieldMinorChildrenCount)
			return ok
		},
	}
}

// minorChildrenCount bounds an entered count to [1, 20]. Presence is the
// previous rule's job.
func minorChildrenCount() Rule {
	return Rule{
		Code:   i18n.CodeChildrenCountRange,
		Params: map[string]any{"min": 1, "max": 20},
		Check: func(_ any, all Values) bool {
			if !boolField(all, FieldHasMinorChildren) {
				return true
			}
			n, ok := intField(all, FieldMinorChildrenCount)
			if !ok {
				return true
			}
			return n >= 1 && n <= 20
		},
	}
}

// documentsPresent requires at least one uploaded file across all attachment
// entries.
func documentsPresent() Rule {
	return Rule{
		Code: i18n.CodeDocumentsRequired,
		Check: func(_ any, all Values) bool {
			return hasAnyFile(documentsField(all))
		},
	}
}
