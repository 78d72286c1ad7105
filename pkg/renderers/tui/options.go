package tui

import (
	"io"

	"github.com/goliatone/go-formstep/pkg/uischema"
)

// Theme captures the message prefixes printed ahead of notices. Colours live
// in Styles so the prefixes stay readable on plain terminals.
type Theme struct {
	StepPrefix  string
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme returns the prefixes used when none are configured.
func DefaultTheme() Theme {
	return Theme{
		StepPrefix:  "▸",
		InfoPrefix:  "•",
		ErrorPrefix: "✗",
	}
}

// PlainTheme returns ASCII prefixes for terminals without Unicode glyphs.
func PlainTheme() Theme {
	return Theme{
		StepPrefix:  ">",
		InfoPrefix:  "-",
		ErrorPrefix: "x",
	}
}

// Option configures the terminal session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLayout supplies labels, help text and select options.
func WithLayout(layout *uischema.Layout) Option {
	return func(s *Session) {
		if layout != nil {
			s.layout = layout
		}
	}
}

// WithOutput redirects step headers, summaries and notices.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithStyles overrides the lipgloss styles.
func WithStyles(styles Styles) Option {
	return func(s *Session) {
		s.styles = styles
	}
}
