package mapper

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// ActivityMapper converts between UserActivity entity and ActivityDocument.
type ActivityMapper struct{}

// NewActivityMapper creates a new ActivityMapper instance.
func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

// ToDocument converts a UserActivity entity to an ActivityDocument.
func (m *ActivityMapper) ToDocument(a *entity.UserActivity) *document.ActivityDocument {
	if a == nil {
		return nil
	}

	return &document.ActivityDocument{
		NumericID: a.ID,
		UserID:    a.UserID,
		Action:    string(a.Action),
		Details: document.ActivityDetailsDocument{
			IP:        a.Details.IP,
			UserAgent: a.Details.UserAgent,
			Extra:     a.Details.Extra,
		},
		CreatedAt: a.CreatedAt,
	}
}

// ToEntity converts an ActivityDocument to a UserActivity entity.
func (m *ActivityMapper) ToEntity(doc *document.ActivityDocument) *entity.UserActivity {
	if doc == nil {
		return nil
	}

	return &entity.UserActivity{
		ID:     doc.NumericID,
		UserID: doc.UserID,
		Action: entity.ActivityAction(doc.Action),
		Details: entity.ActivityDetails{
			IP:        doc.Details.IP,
			UserAgent: doc.Details.UserAgent,
			Extra:     doc.Details.Extra,
		},
		CreatedAt: doc.CreatedAt,
	}
}

// ToEntities converts a slice of ActivityDocument to UserActivity entities.
func (m *ActivityMapper) ToEntities(docs []*document.ActivityDocument) []*entity.UserActivity {
	if docs == nil {
		return nil
	}

	items := make([]*entity.UserActivity, len(docs))
	for i, doc := range docs {
		items[i] = m.ToEntity(doc)
	}
	return items
}

// ImportErrorMapper converts between ImportError entity and ImportErrorDocument.
type ImportErrorMapper struct{}

// NewImportErrorMapper creates a new ImportErrorMapper instance.
func NewImportErrorMapper() *ImportErrorMapper {
	return &ImportErrorMapper{}
}

// ToDocument converts an ImportError entity to an ImportErrorDocument.
func (m *ImportErrorMapper) ToDocument(e *entity.ImportError) *document.ImportErrorDocument {
	if e == nil {
		return nil
	}

	return &document.ImportErrorDocument{
		NumericID:        e.ID,
		SessionStartedAt: e.SessionStartedAt,
		File:             e.File,
		Row:              e.Row,
		Error:            e.Error,
		Data:             e.Data,
		CreatedAt:        e.CreatedAt,
	}
}

// ToEntity converts an ImportErrorDocument to an ImportError entity.
func (m *ImportErrorMapper) ToEntity(doc *document.ImportErrorDocument) *entity.ImportError {
	if doc == nil {
		return nil
	}

	return &entity.ImportError{
		ID:               doc.NumericID,
		SessionStartedAt: doc.SessionStartedAt,
		File:             doc.File,
		Row:              doc.Row,
		Error:            doc.Error,
		Data:             doc.Data,
		CreatedAt:        doc.CreatedAt,
	}
}

// ToEntities converts a slice of ImportErrorDocument to ImportError entities.
func (m *ImportErrorMapper) ToEntities(docs []*document.ImportErrorDocument) []*entity.ImportError {
	if docs == nil {
		return nil
	}

	items := make([]*entity.ImportError, len(docs))
	for i, doc := range docs {
		items[i] = m.ToEntity(doc)
	}
	return items
}
