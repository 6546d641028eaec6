package documents

import (
	"net/url"

	"github.com/emendhq/emend/pkg/query"
	"github.com/emendhq/emend/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Status and ContentType use exact matching.
// Filename uses case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery parses filter criteria from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}
	if v := values.Get("filename"); v != "" {
		f.Filename = &v
	}
	if v := values.Get("content_type"); v != "" {
		f.ContentType = &v
	}
	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.Status,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	return d, err
}
