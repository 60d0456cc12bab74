package document

import (
	"fmt"

	"github.com/hollowbrook/sitesearch/internal/domain"
)

// MaxIDLength is the maximum document identifier length.
const MaxIDLength = 512

// Document is one searchable page: an opaque identifier plus a mapping from
// field name to text (immutable value object). The field set may vary per
// document; configured fields that are absent are simply not searched.
type Document struct {
	id     string
	fields map[string]string
}

// New validates and creates a Document.
// ID: non-empty, max 512 chars. Fields may be nil or empty; values are copied.
func New(id string, fields map[string]string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("%w: document ID too long (max %d)", domain.ErrInvalidDocument, MaxIDLength)
	}

	return Document{id: id, fields: cloneStringMap(fields)}, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Field returns the text of the named field and whether it is present.
func (d *Document) Field(name string) (string, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// Fields returns the field mapping.
func (d *Document) Fields() map[string]string { return d.fields }

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
