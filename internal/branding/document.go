package branding

import (
	"errors"
	"sync"
)

// StyleID identifies the single style element an apply cycle owns.
const StyleID = "cabinet-branding"

// ErrDocumentUnavailable is returned by documents that cannot be written.
var ErrDocumentUnavailable = errors.New("document unavailable")

// Document is the rendering surface that reflects the palette: custom
// properties on the root element plus style blocks addressed by id.
type Document interface {
	// SetProperty sets a custom property on the root element.
	SetProperty(name, value string) error
	// WriteStyle replaces the content of the style block with the given id,
	// creating the block on first use.
	WriteStyle(id, css string) error
}

// MemoryDocument is an in-process Document. It is safe for concurrent use.
type MemoryDocument struct {
	mu         sync.RWMutex
	properties map[string]string
	styles     map[string]string
	revision   uint64
}

// NewMemoryDocument creates an empty document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		properties: make(map[string]string),
		styles:     make(map[string]string),
	}
}

func (d *MemoryDocument) SetProperty(name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.properties[name] = value
	d.revision++
	return nil
}

func (d *MemoryDocument) WriteStyle(id, css string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles[id] = css
	d.revision++
	return nil
}

// Property returns a root custom property.
func (d *MemoryDocument) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.properties[name]
	return v, ok
}

// Style returns the content of a style block.
func (d *MemoryDocument) Style(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	css, ok := d.styles[id]
	return css, ok
}

// StyleCount returns the number of style blocks in the document.
func (d *MemoryDocument) StyleCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.styles)
}

// Revision increases on every write.
func (d *MemoryDocument) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}
