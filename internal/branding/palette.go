package branding

// Neutrals are the five theme-dependent tones of a palette. They never depend
// on the configured colors.
type Neutrals struct {
	Background        string `json:"background"`
	CardBackground    string `json:"cardBackground"`
	SidebarBackground string `json:"sidebarBackground"`
	Border            string `json:"border"`
	MutedText         string `json:"mutedText"`
}

var (
	// LightNeutrals is used when the dark-mode flag is off.
	LightNeutrals = Neutrals{
		Background:        "#fafafa",
		CardBackground:    "#ffffff",
		SidebarBackground: "#f8f9fa",
		Border:            "#e1e5e9",
		MutedText:         "#6b7280",
	}

	// DarkNeutrals is used when the dark-mode flag is on.
	DarkNeutrals = Neutrals{
		Background:        "#0f0f0f",
		CardBackground:    "#1a1a1a",
		SidebarBackground: "#111111",
		Border:            "#2a2a2a",
		MutedText:         "#a0a0a0",
	}
)

// Palette is the seven-color set computed for one apply cycle.
type Palette struct {
	Primary string `json:"primary"`
	Text    string `json:"text"`
	Neutrals
	Dark bool `json:"dark"`
}

// Derive maps the configured colors and theme flag to a full palette.
func Derive(c Colors, dark bool) Palette {
	n := LightNeutrals
	if dark {
		n = DarkNeutrals
	}
	return Palette{
		Primary:  c.Primary,
		Text:     c.Text,
		Neutrals: n,
		Dark:     dark,
	}
}

// Slot identifies one of the seven palette values.
type Slot int

const (
	SlotPrimary Slot = iota
	SlotText
	SlotBackground
	SlotCardBackground
	SlotSidebarBackground
	SlotBorder
	SlotMutedText
)

// Slots lists every slot in custom-property order.
var Slots = []Slot{
	SlotPrimary,
	SlotText,
	SlotBackground,
	SlotCardBackground,
	SlotSidebarBackground,
	SlotBorder,
	SlotMutedText,
}

var slotNames = map[Slot]string{
	SlotPrimary:           "primary",
	SlotText:              "text",
	SlotBackground:        "background",
	SlotCardBackground:    "card-background",
	SlotSidebarBackground: "sidebar-background",
	SlotBorder:            "border",
	SlotMutedText:         "muted-text",
}

func (s Slot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return "unknown"
}

// Property returns the CSS custom property carrying the slot, e.g. --brand-primary.
func (s Slot) Property() string {
	return "--brand-" + s.String()
}

// Value returns the color held in slot.
func (p Palette) Value(s Slot) string {
	switch s {
	case SlotPrimary:
		return p.Primary
	case SlotText:
		return p.Text
	case SlotBackground:
		return p.Background
	case SlotCardBackground:
		return p.CardBackground
	case SlotSidebarBackground:
		return p.SidebarBackground
	case SlotBorder:
		return p.Border
	case SlotMutedText:
		return p.MutedText
	}
	return ""
}

// Properties returns the custom properties as name/value pairs, in slot order.
func (p Palette) Properties() []Property {
	props := make([]Property, 0, len(Slots))
	for _, s := range Slots {
		props = append(props, Property{Name: s.Property(), Value: p.Value(s)})
	}
	return props
}

// Property is one CSS custom property.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
