package branding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseBlocks splits compiled CSS into selector -> property -> value.
func parseBlocks(t *testing.T, css string) map[string]map[string]string {
	t.Helper()

	blocks := make(map[string]map[string]string)
	var current string
	for _, line := range strings.Split(css, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "/*"):
			continue
		case strings.HasSuffix(line, "{"):
			current = strings.TrimSpace(strings.TrimSuffix(line, "{"))
			if _, ok := blocks[current]; !ok {
				blocks[current] = make(map[string]string)
			}
		case line == "}":
			current = ""
		default:
			require.NotEmpty(t, current, "declaration outside of a block: %q", line)
			decl := strings.TrimSuffix(line, ";")
			prop, value, ok := strings.Cut(decl, ":")
			require.True(t, ok, "malformed declaration %q", line)
			value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
			blocks[current][strings.TrimSpace(prop)] = value
		}
	}
	return blocks
}

func TestDefaultRulesSatisfyContrast(t *testing.T) {
	require.NoError(t, CheckContrast(DefaultRules))
}

func TestCheckContrastReportsMissingPairs(t *testing.T) {
	rules := []Rule{
		{Selector: ".chip", Property: "background-color", Value: SlotPrimary},
		{Selector: ".chip", Property: "color", Value: SlotText},
	}
	err := CheckContrast(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), Descendants(".chip"))
}

func TestCompiledCSSContrastPairing(t *testing.T) {
	for _, dark := range []bool{false, true} {
		p := Derive(Colors{Primary: "#60A5FA", Text: "#0b0b0b"}, dark)
		blocks := parseBlocks(t, Compile(p, DefaultRules))

		surfaces := 0
		for sel, decls := range blocks {
			if decls["background-color"] != p.Primary {
				continue
			}
			surfaces++
			assert.Equal(t, p.Text, decls["color"], "%s should use the text color", sel)
			desc, ok := blocks[Descendants(sel)]
			if assert.True(t, ok, "missing descendant rule for %s", sel) {
				assert.Equal(t, p.Text, desc["color"], "%s descendants should use the text color", sel)
			}
		}
		assert.Greater(t, surfaces, 0, "expected at least one primary surface")
	}
}

func TestCompiledCSSNeutralBackgrounds(t *testing.T) {
	p := Derive(Colors{Primary: "#60A5FA", Text: "#0b0b0b"}, true)
	blocks := parseBlocks(t, Compile(p, DefaultRules))

	assert.Equal(t, p.Background, blocks["body"]["background-color"])
	assert.Equal(t, p.CardBackground, blocks[".card"]["background-color"])
	assert.Equal(t, p.SidebarBackground, blocks[".sidebar"]["background-color"])
	assert.Equal(t, p.Border, blocks["hr"]["border-color"])
	assert.Equal(t, p.MutedText, blocks[".text-muted"]["color"])
	assert.Equal(t, p.Primary, blocks["a"]["color"])
	assert.Equal(t, p.Primary, blocks["input:focus"]["border-color"])
}

func TestCompileRootProperties(t *testing.T) {
	p := Derive(DefaultColors, false)
	blocks := parseBlocks(t, Compile(p, DefaultRules))

	root := blocks[":root"]
	for _, prop := range p.Properties() {
		assert.Equal(t, prop.Value, root[prop.Name])
	}
}

func TestCompileDeterministic(t *testing.T) {
	p := Derive(DefaultColors, true)
	first := Compile(p, DefaultRules)
	second := Compile(p, DefaultRules)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "/* cabinet branding (dark) */"))
}

func TestCompileGroupsSelectors(t *testing.T) {
	rules := []Rule{
		{Selector: ".a", Property: "color", Value: SlotText},
		{Selector: ".a", Property: "border-color", Value: SlotBorder},
		{Selector: ".b", Property: "color", Value: SlotMutedText},
	}
	css := Compile(Derive(DefaultColors, false), rules)

	assert.Equal(t, 1, strings.Count(css, ".a {"))
	assert.Contains(t, css, ".a {\n  color: #1a1a1a !important;\n  border-color: #e1e5e9 !important;\n}\n")
	assert.Contains(t, css, ".b {\n  color: #6b7280 !important;\n}\n")
}

func TestOnPrimary(t *testing.T) {
	rules := OnPrimary(".x")
	assert.Equal(t, []Rule{
		{Selector: ".x", Property: "background-color", Value: SlotPrimary},
		{Selector: ".x", Property: "color", Value: SlotText},
		{Selector: ".x :is(*, a:hover, .link:hover)", Property: "color", Value: SlotText},
	}, rules)
}

// A hovered link inside a primary surface must keep the text color, so every
// accent-colored hover selector has to appear in the descendant :is() list.
func TestDescendantsCoverLinkHovers(t *testing.T) {
	desc := Descendants(".badge")
	hovers := 0
	for _, r := range DefaultRules {
		if r.Property != "color" || r.Value != SlotPrimary || !strings.Contains(r.Selector, ":hover") {
			continue
		}
		hovers++
		assert.Contains(t, desc, r.Selector)
	}
	assert.Equal(t, 2, hovers)
}
