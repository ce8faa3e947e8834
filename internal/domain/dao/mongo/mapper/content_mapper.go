package mapper

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// ContentMapper converts between Content entity and ContentDocument.
type ContentMapper struct{}

// NewContentMapper creates a new ContentMapper instance.
func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

// ToDocument converts a Content entity to a ContentDocument.
func (m *ContentMapper) ToDocument(c *entity.Content) *document.ContentDocument {
	if c == nil {
		return nil
	}

	return &document.ContentDocument{
		NumericID:          c.ID,
		Platform:           c.Platform,
		Title:              c.Title,
		PrimaryLanguage:    c.PrimaryLanguage,
		Year:               c.Year,
		SelfDeclaredGenre:  c.SelfDeclaredGenre,
		AssignedGenre:      c.AssignedGenre,
		SelfDeclaredFormat: c.SelfDeclaredFormat,
		AssignedFormat:     c.AssignedFormat,
		Source:             c.Source,
		AgeRating:          c.AgeRating,
		Seasons:            c.Seasons,
		Episodes:           c.Episodes,
		DurationHours:      c.DurationHours,
		ReleaseDate:        c.ReleaseDate,
		SourceFlags: document.SourceFlagsDocument{
			InHouse:      c.SourceFlags.InHouse,
			Commissioned: c.SourceFlags.Commissioned,
			CoProduction: c.SourceFlags.CoProduction,
		},
		Dubbing:       c.Dubbing,
		TotalDubbings: c.TotalDubbings,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToEntity converts a ContentDocument to a Content entity.
func (m *ContentMapper) ToEntity(doc *document.ContentDocument) *entity.Content {
	if doc == nil {
		return nil
	}

	return &entity.Content{
		ID:                 doc.NumericID,
		Platform:           doc.Platform,
		Title:              doc.Title,
		PrimaryLanguage:    doc.PrimaryLanguage,
		Year:               doc.Year,
		SelfDeclaredGenre:  doc.SelfDeclaredGenre,
		AssignedGenre:      doc.AssignedGenre,
		SelfDeclaredFormat: doc.SelfDeclaredFormat,
		AssignedFormat:     doc.AssignedFormat,
		Source:             doc.Source,
		AgeRating:          doc.AgeRating,
		Seasons:            doc.Seasons,
		Episodes:           doc.Episodes,
		DurationHours:      doc.DurationHours,
		ReleaseDate:        doc.ReleaseDate,
		SourceFlags: entity.SourceFlags{
			InHouse:      doc.SourceFlags.InHouse,
			Commissioned: doc.SourceFlags.Commissioned,
			CoProduction: doc.SourceFlags.CoProduction,
		},
		Dubbing:       doc.Dubbing,
		TotalDubbings: doc.TotalDubbings,
		CreatedBy:     doc.CreatedBy,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// ToEntities converts a slice of ContentDocument to Content entities.
func (m *ContentMapper) ToEntities(docs []*document.ContentDocument) []*entity.Content {
	if docs == nil {
		return nil
	}

	items := make([]*entity.Content, len(docs))
	for i, doc := range docs {
		items[i] = m.ToEntity(doc)
	}
	return items
}
