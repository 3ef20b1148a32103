// Package session runs the interactive prompt loop: ask for a city and a
// country code, look the weather up, print it, ask whether to go again.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-station/internal/models"
	"github.com/kjstillabower/weather-station/internal/presenter"
)

const (
	welcomeText   = "Welcome to the weather Station!"
	cityPrompt    = "please enter the name of the city:"
	countryPrompt = "please enter the country code (e.g., US for United States)"
	againPrompt   = "Do you want to search for weather in another city? (yes/no):"
	farewellText  = "Thank you for using our software!"
)

// ErrInputClosed is returned when a prompt cannot read its line. The session
// never continues with a partially read value.
var ErrInputClosed = errors.New("input closed")

// Fetcher looks up the current weather. *service.WeatherService implements it.
type Fetcher interface {
	GetWeather(ctx context.Context, city, countryCode string) (models.Observation, error)
}

// State is the loop's position: Prompting until the user declines, then Terminated.
type State int

const (
	StatePrompting State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "prompting"
}

type Session struct {
	in       *bufio.Reader
	errOut   io.Writer
	fetcher  Fetcher
	renderer *presenter.Renderer
	logger   *zap.Logger
	state    State
	lookups  int
}

// New returns a Session reading answers from in. Summaries and prompts go
// through renderer; failed lookups are written to errOut.
func New(in io.Reader, errOut io.Writer, fetcher Fetcher, renderer *presenter.Renderer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:       bufio.NewReader(in),
		errOut:   errOut,
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
		state:    StatePrompting,
	}
}

// State reports where the loop is.
func (s *Session) State() State { return s.state }

// Lookups reports how many lookups have been attempted.
func (s *Session) Lookups() int { return s.lookups }

// Run drives the loop until the user answers anything but "yes". It returns
// nil after the farewell, or an error wrapping ErrInputClosed (or a write
// failure) that should end the process.
func (s *Session) Run(ctx context.Context) error {
	if err := s.renderer.Banner(welcomeText); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	for s.state == StatePrompting {
		city, err := s.ask(cityPrompt, "city")
		if err != nil {
			return err
		}
		country, err := s.ask(countryPrompt, "country code")
		if err != nil {
			return err
		}

		if err := s.lookup(ctx, city, country); err != nil {
			return err
		}

		answer, err := s.ask(againPrompt, "continue answer")
		if err != nil {
			return err
		}
		if !ShouldContinue(answer) {
			s.state = StateTerminated
		}
	}

	s.logger.Info("session finished", zap.Int("lookups", s.lookups))
	if err := s.renderer.Plain(farewellText); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// lookup fetches and prints one observation. A fetch failure is reported on
// errOut and swallowed; only output failures are returned.
func (s *Session) lookup(ctx context.Context, city, country string) error {
	s.lookups++
	obs, err := s.fetcher.GetWeather(ctx, city, country)
	if err != nil {
		msg := strings.ReplaceAll(err.Error(), "\n", " ")
		if _, werr := fmt.Fprintf(s.errOut, "Error: %s\n", msg); werr != nil {
			return fmt.Errorf("write error output: %w", werr)
		}
		return nil
	}

	if err := s.renderer.Summary(presenter.Format(obs)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// ask prints prompt and reads one trimmed line.
func (s *Session) ask(prompt, field string) (string, error) {
	if err := s.renderer.Prompt(prompt); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		// A last line without a trailing newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read %s: %w", field, ErrInputClosed)
		}
		return "", fmt.Errorf("read %s: %w: %v", field, ErrInputClosed, err)
	}
	return strings.TrimSpace(line), nil
}

// ShouldContinue reports whether answer, trimmed and lower-cased, is "yes".
func ShouldContinue(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}
