package wizard

import (
	"context"
)

// DocumentMeta describes one file part of a multipart registration. Index
// matches the `document_<index>` part name so the platform API can associate
// files with their type even when several files share one document type.
type DocumentMeta struct {
	Index    int          `json:"index"`
	Type     DocumentType `json:"type"`
	Category string       `json:"category"`
	Filename string       `json:"filename"`
}

// DocumentPart pairs a file with its metadata entry.
type DocumentPart struct {
	Meta DocumentMeta
	File FileUpload
}

// RegistrationPayload is the flattened form data in the shape the platform
// API expects. DocumentsMetadata is only set when file parts accompany the
// payload.
type RegistrationPayload struct {
	Email                 string         `json:"email"`
	Phone                 string         `json:"phone"`
	Password              string         `json:"password"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	Patronymic            string         `json:"patronymic,omitempty"`
	DateOfBirth           string         `json:"date_of_birth"`
	Region                string         `json:"region"`
	City                  string         `json:"city"`
	Category              string         `json:"category"`
	Gender                string         `json:"gender,omitempty"`
	MaritalStatus         string         `json:"marital_status,omitempty"`
	ActivityType          string         `json:"activity_type,omitempty"`
	Bio                   string         `json:"bio,omitempty"`
	HasMinorChildren      bool           `json:"has_minor_children"`
	MinorChildrenCount    *int           `json:"minor_children_count,omitempty"`
	Address               string         `json:"address"`
	EmergencyContactName  string         `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string         `json:"emergency_contact_phone,omitempty"`
	NotificationsEnabled  bool           `json:"notifications_enabled"`
	EmailNotifications    bool           `json:"email_notifications"`
	SMSNotifications      bool           `json:"sms_notifications"`
	Terms                 bool           `json:"terms"`
	DocumentsMetadata     []DocumentMeta `json:"documents_metadata,omitempty"`
}

// Identifier returns the login identifier for the auto-login after
// registration: the email when present, otherwise the phone number.
func (p RegistrationPayload) Identifier() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Phone
}

// Registrar submits an assembled registration to the platform API. With
// document parts the request goes out as multipart, otherwise as plain JSON.
type Registrar interface {
	Register(ctx context.Context, payload RegistrationPayload, documents []DocumentPart) error
}

// Authenticator establishes an authenticated session: login with credentials
// and fetch the user's full profile. The session layer implements it.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) error
}

// assemblePayload flattens a form-data snapshot into the wire payload plus
// the file parts. Files are enumerated across all attachment entries in
// order; entries without files contribute nothing.
func assemblePayload(data Values) (RegistrationPayload, []DocumentPart) {
	payload := RegistrationPayload{
		Email:                 stringField(data, FieldEmail),
		Phone:                 stringField(data, FieldPhone),
		Password:              stringField(data, FieldPassword),
		FirstName:             stringField(data, FieldFirstName),
		LastName:              stringField(data, FieldLastName),
		Patronymic:            stringField(data, FieldPatronymic),
		DateOfBirth:           stringField(data, FieldDateOfBirth),
		Region:                stringField(data, FieldRegion),
		City:                  stringField(data, FieldCity),
		Category:              stringField(data, FieldCategory),
		Gender:                stringField(data, FieldGender),
		MaritalStatus:         stringField(data, FieldMaritalStatus),
		ActivityType:          stringField(data, FieldActivityType),
		Bio:                   stringField(data, FieldBio),
		HasMinorChildren:      boolField(data, FieldHasMinorChildren),
		Address:               stringField(data, FieldAddress),
		EmergencyContactName:  stringField(data, FieldEmergencyContactName),
		EmergencyContactPhone: stringField(data, FieldEmergencyContactPhone),
		NotificationsEnabled:  boolField(data, FieldNotificationsEnabled),
		EmailNotifications:    boolField(data, FieldEmailNotifications),
		SMSNotifications:      boolField(data, FieldSMSNotifications),
		Terms:                 boolField(data, FieldTerms),
	}
	if count, ok := intField(data, FieldMinorChildrenCount); ok {
		payload.MinorChildrenCount = &count
	}

	var parts []DocumentPart
	index := 0
	for _, att := range documentsField(data) {
		for _, file := range att.Files {
			meta := DocumentMeta{
				Index:    index,
				Type:     att.Type,
				Category: payload.Category,
				Filename: file.Filename,
			}
			parts = append(parts, DocumentPart{Meta: meta, File: file})
			payload.DocumentsMetadata = append(payload.DocumentsMetadata, meta)
			index++
		}
	}
	return payload, parts
}
