package wizard

import "sync"

// Store is the persistent form store: the single source of truth for every
// registration field across all steps. Per-step forms are transient views
// that mirror every change back into it, so a review step always reads
// current data regardless of which step is active.
type Store struct {
	mu     sync.RWMutex
	values Values
}

func NewStore() *Store {
	return &Store{values: defaults()}
}

// SetStepData merges partial field values into the store. Raw merge, no
// validation.
func (s *Store) SetStepData(partial Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for field, value := range partial {
		s.values[field] = value
	}
}

// Reset restores every field to its documented default.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = defaults()
}

// GetFormData returns a snapshot copy of all fields. Mutating the snapshot
// does not affect the store.
func (s *Store) GetFormData() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyValues(s.values)
}

// StepValues returns a copy of the slice of fields owned by one step.
func (s *Store) StepValues(step int) Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Values{}
	for _, field := range stepFields[step] {
		value := s.values[field]
		if docs, ok := value.([]DocumentAttachment); ok {
			copied := make([]DocumentAttachment, len(docs))
			copy(copied, docs)
			value = copied
		}
		out[field] = value
	}
	return out
}

// Documents returns the current attachment list.
func (s *Store) Documents() []DocumentAttachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := documentsField(s.values)
	copied := make([]DocumentAttachment, len(docs))
	copy(copied, docs)
	return copied
}

// AppendDocumentFile adds a file to the attachment entry of the given type,
// creating the entry if needed.
func (s *Store) AppendDocumentFile(docType DocumentType, file FileUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := documentsField(s.values)
	for i := range docs {
		if docs[i].Type == docType {
			docs[i].Files = append(docs[i].Files, file)
			s.values[FieldDocuments] = docs
			return
		}
	}
	s.values[FieldDocuments] = append(docs, DocumentAttachment{
		Type:  docType,
		Files: []FileUpload{file},
	})
}
