package wizard

import (
	"vetgate/internal/i18n"
)

// DocumentType classifies an uploaded verification document.
type DocumentType string

const (
	DocumentPassport                DocumentType = "passport"
	DocumentMilitaryID              DocumentType = "military_id"
	DocumentVeteranCertificate      DocumentType = "veteran_certificate"
	DocumentDisabilityCertificate   DocumentType = "disability_certificate"
	DocumentDeathCertificate        DocumentType = "death_certificate"
	DocumentBirthCertificate        DocumentType = "birth_certificate"
	DocumentMarriageCertificate     DocumentType = "marriage_certificate"
	DocumentDisplacementCertificate DocumentType = "displacement_certificate"
	DocumentOther                   DocumentType = "other"
)

// Upload limits for verification documents.
const (
	MaxDocumentFiles    = 10
	MaxDocumentFileSize = 10 << 20 // bytes
)

var allowedDocumentMIME = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/heic":      true,
	"application/pdf": true,
}

// FileUpload is one user-uploaded file held in memory until submission.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentAttachment groups uploaded files under one document type. An entry
// may hold zero files; the documents-required rule only demands at least one
// file across all entries.
type DocumentAttachment struct {
	Type  DocumentType
	Files []FileUpload
}

// hasAnyFile reports whether at least one attachment contains a file.
func hasAnyFile(attachments []DocumentAttachment) bool {
	for _, att := range attachments {
		if len(att.Files) > 0 {
			return true
		}
	}
	return false
}

func countFiles(attachments []DocumentAttachment) int {
	total := 0
	for _, att := range attachments {
		total += len(att.Files)
	}
	return total
}

// CheckUpload enforces size and MIME constraints for one incoming file, given
// how many files the session already holds. A nil return means acceptable.
func CheckUpload(file FileUpload, existingCount int) *FieldError {
	if existingCount >= MaxDocumentFiles {
		return &FieldError{
			Field:  FieldDocuments,
			Code:   i18n.CodeTooManyFiles,
			Params: map[string]any{"max": MaxDocumentFiles},
		}
	}
	if len(file.Data) > MaxDocumentFileSize {
		return &FieldError{
			Field:  FieldDocuments,
			Code:   i18n.CodeFileTooLarge,
			Params: map[string]any{"max_mb": MaxDocumentFileSize >> 20},
		}
	}
	if !allowedDocumentMIME[file.ContentType] {
		return &FieldError{Field: FieldDocuments, Code: i18n.CodeFileTypeInvalid}
	}
	return nil
}
