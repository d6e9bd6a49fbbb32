// Package branding turns the two configurable practice colors into a full
// light or dark palette and applies it to a document as custom properties
// plus one generated stylesheet.
//
// Integration example:
//
//	store := branding.NewStore(settingsClient, log)
//	doc := branding.NewMemoryDocument()
//	svc := branding.NewService(store, doc, log)
//
//	svc.Apply(ctx, darkMode)
//	css, _ := doc.Style(branding.StyleID)
//
//	// after the settings page saves new colors:
//	svc.ClearCache()
//	svc.Apply(ctx, darkMode)
package branding
