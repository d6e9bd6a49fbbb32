package branding

import (
	"context"
	"fmt"

	"github.com/mbourmaud/cabinet/internal/logger"
)

// Service runs apply cycles against one Document.
type Service struct {
	store   *Store
	doc     Document
	rules   []Rule
	styleID string
	log     *logger.Logger
	onApply func(Palette)
}

// NewService creates a service that resolves colors through store and writes
// to doc.
func NewService(store *Store, doc Document, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		store:   store,
		doc:     doc,
		rules:   DefaultRules,
		styleID: StyleID,
		log:     log.WithField("component", "branding"),
	}
}

// SetStyleID changes the id of the style block the service owns.
func (s *Service) SetStyleID(id string) {
	if id != "" {
		s.styleID = id
	}
}

// StyleID returns the id of the style block the service owns.
func (s *Service) StyleID() string {
	return s.styleID
}

// SetRules replaces the override table. Tables that leave a primary surface
// without the text color are rejected.
func (s *Service) SetRules(rules []Rule) error {
	if err := CheckContrast(rules); err != nil {
		return err
	}
	s.rules = rules
	return nil
}

// OnApply registers a callback invoked after every successful apply.
func (s *Service) OnApply(fn func(Palette)) {
	s.onApply = fn
}

// Store returns the color store backing the service.
func (s *Service) Store() *Store {
	return s.store
}

// Apply resolves the colors, derives the palette for the given theme flag and
// writes custom properties and the compiled stylesheet to the document.
// Failures are logged and never returned.
func (s *Service) Apply(ctx context.Context, dark bool) {
	p := Derive(s.store.Colors(ctx), dark)
	css := Compile(p, s.rules)

	if err := s.write(p, css); err != nil {
		MetricApplyErrors.Inc()
		s.log.Error("branding apply failed (mode=%s): %v", modeLabel(dark), err)
		return
	}

	MetricApplyTotal.WithLabelValues(modeLabel(dark)).Inc()
	s.log.Debug("branding applied (mode=%s primary=%s text=%s)", modeLabel(dark), p.Primary, p.Text)
	if s.onApply != nil {
		s.onApply(p)
	}
}

func (s *Service) write(p Palette, css string) error {
	if s.doc == nil {
		return ErrDocumentUnavailable
	}
	for _, prop := range p.Properties() {
		if err := s.doc.SetProperty(prop.Name, prop.Value); err != nil {
			return fmt.Errorf("set property %s: %w", prop.Name, err)
		}
	}
	if err := s.doc.WriteStyle(s.styleID, css); err != nil {
		return fmt.Errorf("write style %s: %w", s.styleID, err)
	}
	return nil
}

// UpdateColor overwrites one cached color and re-applies immediately.
// Only validation errors are returned.
func (s *Service) UpdateColor(ctx context.Context, key ColorKey, value string, dark bool) error {
	if _, err := s.store.Update(ctx, key, value); err != nil {
		return err
	}
	s.Apply(ctx, dark)
	return nil
}

// ClearCache invalidates the store so the next apply refetches.
func (s *Service) ClearCache() {
	s.store.Clear()
}

// Palette resolves the colors and derives the palette without writing.
func (s *Service) Palette(ctx context.Context, dark bool) Palette {
	return Derive(s.store.Colors(ctx), dark)
}
