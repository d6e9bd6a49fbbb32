package branding

import (
	"fmt"
	"strings"
)

// Rule binds one CSS property of a selector to a palette slot.
type Rule struct {
	Selector string
	Property string
	Value    Slot
}

// DefaultRules is the override table applied on every cycle.
var DefaultRules = defaultRules()

func defaultRules() []Rule {
	var rules []Rule
	add := func(property string, slot Slot, selectors ...string) {
		for _, sel := range selectors {
			rules = append(rules, Rule{Selector: sel, Property: property, Value: slot})
		}
	}
	each := func(selectors []string, decls ...func(string)) {
		for _, sel := range selectors {
			for _, d := range decls {
				d(sel)
			}
		}
	}
	decl := func(property string, slot Slot) func(string) {
		return func(sel string) { add(property, slot, sel) }
	}

	// Page surfaces.
	each([]string{"body", ".main-content"},
		decl("background-color", SlotBackground),
		decl("color", SlotText))
	each([]string{".card", ".panel", ".modal-content", ".dropdown-menu"},
		decl("background-color", SlotCardBackground),
		decl("border-color", SlotBorder))
	each([]string{".sidebar", "aside", ".sidebar-nav"},
		decl("background-color", SlotSidebarBackground),
		decl("border-color", SlotBorder))
	add("color", SlotMutedText, ".text-muted", ".muted", "small", ".help-text")

	// Links.
	add("color", SlotPrimary, "a", ".link")
	add("color", SlotPrimary, linkHovers...)

	// Buttons, badges and active states painted with the accent color.
	rules = append(rules, OnPrimary(
		".btn-primary",
		".btn-primary:hover",
		`button[type="submit"]`,
		".btn-outline:hover",
		".badge",
		".badge-primary",
		".bg-primary",
		".nav-item.active",
		`[data-surface="primary"]`,
	)...)
	each([]string{".btn-outline"},
		decl("border-color", SlotPrimary),
		decl("color", SlotPrimary))
	each([]string{".tab.active"},
		decl("border-bottom-color", SlotPrimary),
		decl("color", SlotPrimary))
	add("border-left-color", SlotPrimary, ".list-item.selected")

	// Form controls.
	each([]string{"input", "select", "textarea"},
		decl("background-color", SlotCardBackground),
		decl("border-color", SlotBorder),
		decl("color", SlotText))
	each([]string{"input:focus", "select:focus", "textarea:focus"},
		decl("border-color", SlotPrimary),
		decl("outline-color", SlotPrimary))
	add("accent-color", SlotPrimary, `input[type="checkbox"]`, `input[type="radio"]`)

	// Borders.
	add("border-color", SlotBorder, ".border", "hr", "table th", "table td", ".divider")

	return rules
}

// linkHovers paint the accent color on hover and must lose to the text color
// inside primary surfaces.
var linkHovers = []string{"a:hover", ".link:hover"}

// Descendants returns the selector matching everything inside sel. The :is()
// list carries the link hover selectors so its specificity beats them.
func Descendants(sel string) string {
	return sel + " :is(*, " + strings.Join(linkHovers, ", ") + ")"
}

// OnPrimary returns the rules for surfaces filled with the accent color. Each
// selector gets the text color on itself and on every descendant so text never
// blends into its own background.
func OnPrimary(selectors ...string) []Rule {
	rules := make([]Rule, 0, len(selectors)*3)
	for _, sel := range selectors {
		rules = append(rules,
			Rule{Selector: sel, Property: "background-color", Value: SlotPrimary},
			Rule{Selector: sel, Property: "color", Value: SlotText},
			Rule{Selector: Descendants(sel), Property: "color", Value: SlotText},
		)
	}
	return rules
}

// CheckContrast verifies that every primary-filled selector carries the text
// color on itself and its descendants.
func CheckContrast(rules []Rule) error {
	have := make(map[Rule]bool, len(rules))
	for _, r := range rules {
		have[r] = true
	}

	var missing []string
	for _, r := range rules {
		if r.Property != "background-color" || r.Value != SlotPrimary {
			continue
		}
		if !have[Rule{Selector: r.Selector, Property: "color", Value: SlotText}] {
			missing = append(missing, r.Selector)
		}
		if !have[Rule{Selector: Descendants(r.Selector), Property: "color", Value: SlotText}] {
			missing = append(missing, Descendants(r.Selector))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("primary surfaces without text color: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Compile renders the palette through rules into one stylesheet. Consecutive
// rules sharing a selector are merged into one block. Output is deterministic
// for equal inputs.
func Compile(p Palette, rules []Rule) string {
	var b strings.Builder

	mode := "light"
	if p.Dark {
		mode = "dark"
	}
	fmt.Fprintf(&b, "/* cabinet branding (%s) */\n", mode)

	b.WriteString(":root {\n")
	for _, prop := range p.Properties() {
		fmt.Fprintf(&b, "  %s: %s;\n", prop.Name, prop.Value)
	}
	b.WriteString("}\n")

	for i := 0; i < len(rules); {
		sel := rules[i].Selector
		fmt.Fprintf(&b, "%s {\n", sel)
		for ; i < len(rules) && rules[i].Selector == sel; i++ {
			fmt.Fprintf(&b, "  %s: %s !important;\n", rules[i].Property, p.Value(rules[i].Value))
		}
		b.WriteString("}\n")
	}
	return b.String()
}
