package i18n

// Message codes used across the service. Validation codes are emitted by the
// wizard schemas; the rest back user-facing notifications.
const (
	CodeRequired           = "validation.required"
	CodeMinLength          = "validation.min_length"
	CodeMaxLength          = "validation.max_length"
	CodeEmailInvalid       = "validation.email_invalid"
	CodePhoneInvalid       = "validation.phone_invalid"
	CodeNameInvalid        = "validation.name_invalid"
	CodePasswordTooShort   = "validation.password_too_short"
	CodePasswordTooWeak    = "validation.password_too_weak"
	CodePasswordsNotMatch  = "validation.passwords_not_match"
	CodeTermsNotAccepted   = "validation.terms_not_accepted"
	CodeChildrenCountReq   = "validation.minor_children_count_required"
	CodeChildrenCountRange = "validation.minor_children_count_range"
	CodeDocumentsRequired  = "validation.documents_required"
	CodeFileTooLarge       = "validation.file_too_large"
	CodeFileTypeInvalid    = "validation.file_type_invalid"
	CodeTooManyFiles       = "validation.too_many_files"
	CodeEmailTaken         = "validation.email_taken"

	CodeLoginSuccess    = "auth.login_success"
	CodeLoginFailed     = "auth.login_failed"
	CodeRegisterSuccess = "auth.register_success"
	CodeRegisterFailed  = "auth.register_failed"
	CodeAutoLoginFailed = "auth.auto_login_failed"
	CodeSessionExpired  = "auth.session_expired"
	CodeLoggedOut       = "auth.logged_out"

	CodeStepsIncomplete = "registration.steps_incomplete"
	CodeContentFailed   = "content.load_failed"
)

var catalogs = map[string]map[string]string{
	"uk": {
		CodeRequired:           "Це поле є обов'язковим",
		CodeMinLength:          "Мінімальна довжина: {min} символів",
		CodeMaxLength:          "Максимальна довжина: {max} символів",
		CodeEmailInvalid:       "Введіть дійсну електронну адресу",
		CodePhoneInvalid:       "Введіть дійсний номер телефону",
		CodeNameInvalid:        "Ім'я може містити лише літери, апострофи, дефіси та пробіли",
		CodePasswordTooShort:   "Пароль повинен містити принаймні {min} символів",
		CodePasswordTooWeak:    "Пароль повинен містити принаймні одну велику літеру, одну малу літеру та одну цифру",
		CodePasswordsNotMatch:  "Паролі не співпадають",
		CodeTermsNotAccepted:   "Необхідно прийняти умови та положення",
		CodeChildrenCountReq:   "Вкажіть кількість неповнолітніх дітей",
		CodeChildrenCountRange: "Кількість дітей має бути від {min} до {max}",
		CodeDocumentsRequired:  "Завантажте принаймні один документ",
		CodeFileTooLarge:       "Розмір файлу не повинен перевищувати {max_mb} МБ",
		CodeFileTypeInvalid:    "Непідтримуваний тип файлу",
		CodeTooManyFiles:       "Максимальна кількість файлів: {max}",
		CodeEmailTaken:         "Ця електронна адреса вже зареєстрована",
		CodeLoginSuccess:       "Вхід виконано успішно",
		CodeLoginFailed:        "Не вдалося увійти",
		CodeRegisterSuccess:    "Реєстрацію завершено успішно",
		CodeRegisterFailed:     "Не вдалося завершити реєстрацію",
		CodeAutoLoginFailed:    "Реєстрацію завершено, але автоматичний вхід не вдався. Увійдіть вручну.",
		CodeSessionExpired:     "Сесія закінчилася. Увійдіть знову.",
		CodeLoggedOut:          "Ви вийшли з системи",
		CodeStepsIncomplete:    "Заповніть усі кроки реєстрації",
		CodeContentFailed:      "Не вдалося завантажити дані. Спробуйте пізніше.",
	},
	"en": {
		CodeRequired:           "This field is required",
		CodeMinLength:          "Must be at least {min} characters",
		CodeMaxLength:          "Must be at most {max} characters",
		CodeEmailInvalid:       "Please enter a valid email address",
		CodePhoneInvalid:       "Please enter a valid phone number",
		CodeNameInvalid:        "Name may only contain letters, apostrophes, hyphens and spaces",
		CodePasswordTooShort:   "Password must be at least {min} characters",
		CodePasswordTooWeak:    "Password must contain an uppercase letter, a lowercase letter and a digit",
		CodePasswordsNotMatch:  "Passwords do not match",
		CodeTermsNotAccepted:   "You must accept the terms and conditions",
		CodeChildrenCountReq:   "Please provide the number of minor children",
		CodeChildrenCountRange: "Children count must be between {min} and {max}",
		CodeDocumentsRequired:  "Please upload at least one document",
		CodeFileTooLarge:       "File size must not exceed {max_mb} MB",
		CodeFileTypeInvalid:    "Unsupported file type",
		CodeTooManyFiles:       "At most {max} files allowed",
		CodeEmailTaken:         "This email address is already registered",
		CodeLoginSuccess:       "Signed in successfully",
		CodeLoginFailed:        "Login failed",
		CodeRegisterSuccess:    "Registration completed successfully",
		CodeRegisterFailed:     "Registration failed",
		CodeAutoLoginFailed:    "Registered, but automatic sign-in failed. Please sign in manually.",
		CodeSessionExpired:     "Your session has expired. Please sign in again.",
		CodeLoggedOut:          "Signed out",
		CodeStepsIncomplete:    "Please complete all registration steps",
		CodeContentFailed:      "Failed to load data. Please try again later.",
	},
}
