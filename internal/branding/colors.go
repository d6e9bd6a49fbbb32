package branding

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKey names one of the two user-configurable branding colors.
type ColorKey string

const (
	KeyPrimary ColorKey = "primary"
	KeyText    ColorKey = "text"
)

// Keys lists every configurable key in display order.
var Keys = []ColorKey{KeyPrimary, KeyText}

var (
	// ErrUnknownKey is returned when a color key is neither primary nor text.
	ErrUnknownKey = errors.New("unknown color key")
	// ErrInvalidColor is returned for values that are not #rgb or #rrggbb hex colors.
	ErrInvalidColor = errors.New("invalid color")
)

// Colors is the two-color branding configuration.
type Colors struct {
	Primary string `json:"primary" yaml:"primary"`
	Text    string `json:"text" yaml:"text"`
}

// DefaultColors substitute for a failed fetch, and per field for a missing one.
var DefaultColors = Colors{
	Primary: "#F8BBD0",
	Text:    "#1a1a1a",
}

// ParseKey validates a user-supplied key.
func ParseKey(s string) (ColorKey, error) {
	key := ColorKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case KeyPrimary, KeyText:
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// hexColor is the only color syntax written into the stylesheet. colorful.Hex
// alone accepts trailing text and spaces between pairs.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor reports whether value is a hex color the stylesheet can carry.
func ValidateColor(value string) error {
	value = strings.TrimSpace(value)
	if !hexColor.MatchString(value) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	if _, err := colorful.Hex(value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return nil
}

// Get returns the value stored under key.
func (c Colors) Get(key ColorKey) (string, error) {
	switch key {
	case KeyPrimary:
		return c.Primary, nil
	case KeyText:
		return c.Text, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Set overwrites the value stored under key after validating it.
func (c *Colors) Set(key ColorKey, value string) error {
	value = strings.TrimSpace(value)
	if err := ValidateColor(value); err != nil {
		return err
	}
	switch key {
	case KeyPrimary:
		c.Primary = value
	case KeyText:
		c.Text = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// WithDefaults fills every missing or malformed field from DefaultColors.
func (c Colors) WithDefaults() Colors {
	return c.FillFrom(DefaultColors)
}

// FillFrom replaces every missing or malformed field with the one in d.
func (c Colors) FillFrom(d Colors) Colors {
	out := c
	if ValidateColor(out.Primary) != nil {
		out.Primary = d.Primary
	}
	if ValidateColor(out.Text) != nil {
		out.Text = d.Text
	}
	out.Primary = strings.TrimSpace(out.Primary)
	out.Text = strings.TrimSpace(out.Text)
	return out
}

// Validate checks both fields.
func (c Colors) Validate() error {
	if err := ValidateColor(c.Primary); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	if err := ValidateColor(c.Text); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	return nil
}
