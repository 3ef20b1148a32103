package presenter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kjstillabower/weather-station/internal/observability"
)

// ColorMode controls whether the Renderer emits ANSI escapes.
type ColorMode int

const (
	// ColorAuto follows fatih/color's detection (NO_COLOR, TERM=dumb, non-TTY stdout).
	ColorAuto ColorMode = iota
	ColorNever
	ColorAlways
)

// Renderer writes session text to a terminal, styling summaries by Bucket.
type Renderer struct {
	out     io.Writer
	banner  *color.Color
	prompt  *color.Color
	buckets map[Bucket]*color.Color
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer, mode ColorMode) *Renderer {
	r := &Renderer{
		out:    out,
		banner: color.New(color.FgHiYellow),
		prompt: color.New(color.FgHiGreen),
		buckets: map[Bucket]*color.Color{
			BucketClear:         color.New(color.FgHiYellow),
			BucketCloudy:        color.New(color.FgHiBlue),
			BucketObscured:      color.New(color.Faint),
			BucketPrecipitation: color.New(color.FgHiCyan),
		},
	}
	for _, c := range r.styles() {
		switch mode {
		case ColorNever:
			c.DisableColor()
		case ColorAlways:
			c.EnableColor()
		}
	}
	return r
}

func (r *Renderer) styles() []*color.Color {
	styles := []*color.Color{r.banner, r.prompt}
	for _, c := range r.buckets {
		styles = append(styles, c)
	}
	return styles
}

// Banner writes a highlighted line, used for the welcome message.
func (r *Renderer) Banner(text string) error {
	_, err := fmt.Fprintln(r.out, r.banner.Sprint(text))
	return err
}

// Prompt writes a question line before reading input.
func (r *Renderer) Prompt(text string) error {
	_, err := fmt.Fprintln(r.out, r.prompt.Sprint(text))
	return err
}

// Plain writes text with no styling.
func (r *Renderer) Plain(text string) error {
	_, err := fmt.Fprintln(r.out, text)
	return err
}

// Summary writes s in its bucket's color. BucketDefault is unstyled.
func (r *Renderer) Summary(s Summary) error {
	observability.SummariesRenderedTotal.WithLabelValues(s.Bucket.String(), s.Band.String()).Inc()

	text := s.Text
	if c, ok := r.buckets[s.Bucket]; ok {
		text = c.Sprint(text)
	}
	_, err := fmt.Fprintln(r.out, text)
	return err
}
