package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mbourmaud/cabinet/internal/branding"
)

// Header renders a header with emoji and title
func Header(emoji, title string) string {
	text := strings.TrimSpace(emoji + " " + title)
	return StyleHeader.Render(text) + "\n"
}

// Success renders a success message with emoji
func Success(message string) string {
	return StyleSuccess.Render("✨ " + message)
}

// Warning renders a warning message with emoji
func Warning(message string) string {
	return StyleWarning.Render("⚠️  " + message)
}

// Error renders an error message
func Error(message string) string {
	return StyleError.Render("❌ " + message)
}

// boxWidth is the widest content line a box keeps before truncating.
const boxWidth = 76

// truncate shortens s to width terminal cells, ending in an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// ErrorBox lists lines under a red title. Empty lines are dropped and long
// ones truncated.
func ErrorBox(title string, lines ...string) string {
	if title == "" {
		title = "Error"
	}

	body := []string{StyleError.Render("⚠️  " + title)}
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			body = append(body, "  "+truncate(line, boxWidth-2))
		}
	}
	return ErrorBoxStyle.Render(strings.Join(body, "\n")) + "\n"
}

// Field is one label/value line of an InfoBox.
type Field struct {
	Label string
	Value string
}

// InfoBox renders aligned label/value fields under a blue title.
func InfoBox(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	body := []string{StyleBlue.Render(title)}
	for _, f := range fields {
		pad := strings.Repeat(" ", width-lipgloss.Width(f.Label)+2)
		body = append(body, StyleDim.Render(f.Label)+pad+truncate(f.Value, boxWidth-width-2))
	}
	return InfoBoxStyle.Render(strings.Join(body, "\n")) + "\n"
}

// SuccessBox renders a green boxed message with an optional detail line.
func SuccessBox(title, detail string) string {
	content := StyleSuccess.Render("✨ " + title)
	if detail != "" {
		content += "\n" + StyleDim.Render(detail)
	}
	return SuccessBoxStyle.Render(content) + "\n"
}

// CheckMark renders a green checkmark with optional label
func CheckMark(label string) string {
	return StyleGreen.Render(strings.TrimSpace("✓ " + label))
}

// ProgressLine renders a progress line like "label... ✓"
func ProgressLine(label, status string) string {
	switch status {
	case "ok":
		status = StyleGreen.Render("✓")
	case "fail":
		status = StyleRed.Render("✗")
	}
	return fmt.Sprintf("  %s... %s\n", StyleDim.Render(label), status)
}

// Step is one suggested command after an operation completes.
type Step struct {
	Command     string
	Description string
}

// NextSteps lists follow-up commands with their descriptions aligned.
func NextSteps(steps []Step) string {
	width := 0
	for _, step := range steps {
		width = max(width, len(step.Command))
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render("Next steps:") + "\n")
	for _, step := range steps {
		line := "  " + StyleCommand.Render(step.Command)
		if step.Description != "" {
			pad := strings.Repeat(" ", width-len(step.Command))
			line += pad + StyleComment.Render("  # "+step.Description)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Table renders a simple table. Cells may carry ANSI styling.
func Table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	var b strings.Builder

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	for i, h := range headers {
		padded := h + strings.Repeat(" ", widths[i]-lipgloss.Width(h))
		b.WriteString(TableHeaderStyle.Render(padded))
	}
	b.WriteString("\n")

	for _, w := range widths {
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Section renders a bold title followed by its content on the next line.
func Section(title, content string) string {
	return StyleBold.Render(title) + "\n" + strings.TrimRight(content, "\n") + "\n"
}

// Swatch renders label on a background of the given hex color. The label is
// drawn in fg when set.
func Swatch(hex, fg, label string) string {
	style := SwatchStyle.Background(lipgloss.Color(hex))
	if fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	return style.Render(label)
}

// PaletteTable renders every slot of p with a color sample.
func PaletteTable(p branding.Palette) string {
	rows := make([][]string, 0, len(branding.Slots))
	for _, slot := range branding.Slots {
		value := p.Value(slot)
		rows = append(rows, []string{
			slot.String(),
			value,
			Swatch(value, "", "      "),
			StyleDim.Render(slot.Property()),
		})
	}
	return Table([]string{"Slot", "Value", "Sample", "Property"}, rows)
}

// ContrastLine summarizes text-on-primary readability.
func ContrastLine(p branding.Palette) string {
	c := p.TextOnPrimary()
	sample := Swatch(p.Primary, p.Text, " Aa ")
	ratio := fmt.Sprintf("%.2f:1", c.Ratio)
	if c.PassAA {
		return fmt.Sprintf("%s %s %s", sample, ratio, CheckMark("WCAG AA"))
	}
	return fmt.Sprintf("%s %s %s", sample, ratio, StyleWarning.Render(fmt.Sprintf("below %.1f:1", branding.MinContrastAA)))
}
