// Package viewmodel holds the presentation state behind the CLI screens:
// whether a form may be submitted, how its submit button looks, and which
// onboarding page shows the "Get Started" button.
package viewmodel

import "fmt"

// Color is an sRGB colour with alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Hex renders #RRGGBB, or #RRGGBBAA when not opaque.
func (c Color) Hex() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, uint8(c.A*255+0.5))
}

// over composites c on an opaque background.
func (c Color) over(bg Color) Color {
	mix := func(fg, bg uint8) uint8 {
		return uint8(float64(fg)*c.A + float64(bg)*(1-c.A) + 0.5)
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 1}
}

var (
	Purple = Color{R: 175, G: 82, B: 222, A: 1}
	White  = Color{R: 255, G: 255, B: 255, A: 1}
	Black  = Color{A: 1}
)

// ButtonStyle is how a submit button is drawn.
type ButtonStyle struct {
	Enabled    bool
	Background Color
	Title      Color
}

// Render draws label as a terminal button using 24-bit ANSI colours,
// blending translucent colours over a black terminal.
func (s ButtonStyle) Render(label string) string {
	bg := s.Background.over(Black)
	fg := s.Title.over(bg)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm  %s  \x1b[0m",
		bg.R, bg.G, bg.B, fg.R, fg.G, fg.B, label)
}

// Form is anything with a submit button.
type Form interface {
	FormIsValid() bool
}

// ButtonTint returns the submit button style for the form's current input.
func ButtonTint(f Form) ButtonStyle {
	if f.FormIsValid() {
		return ButtonStyle{Enabled: true, Background: Purple, Title: White}
	}
	return ButtonStyle{Background: Purple.WithAlpha(0.5), Title: White.WithAlpha(0.67)}
}

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) FormIsValid() bool {
	return f.Email != "" && f.Password != ""
}

type RegistrationForm struct {
	Email    string
	Password string
	Fullname string
}

func (f RegistrationForm) FormIsValid() bool {
	return f.Email != "" && f.Password != "" && f.Fullname != ""
}

type ResetPasswordForm struct {
	Email string
}

func (f ResetPasswordForm) FormIsValid() bool {
	return f.Email != ""
}
