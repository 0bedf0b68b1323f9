package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

const (
	Banner       = "Enter the cities for the foodie tour (one per line). Press Enter twice to finish:"
	EmptyHint    = "Please enter at least one city."
	formTitle    = "Foodie tour cities"
	formSubtitle = "One city per line. Submit when done."
)

// ErrNoCities is returned when input ends before a single city was entered.
var ErrNoCities = errors.New("no cities entered")

// Collector gathers the cities for a tour. A nil error always comes with at
// least one city.
type Collector interface {
	Collect(ctx context.Context) ([]string, error)
}

// LineCollector reads one city per line until a blank line follows at least
// one city.
type LineCollector struct {
	in  io.Reader
	out io.Writer
}

func NewLineCollector(in io.Reader, out io.Writer) *LineCollector {
	return &LineCollector{in: in, out: out}
}

func (c *LineCollector) Collect(ctx context.Context) ([]string, error) {
	if _, err := fmt.Fprintln(c.out, Banner); err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(c.in)
	var cities []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		city := strings.TrimSpace(scanner.Text())
		if city != "" {
			cities = append(cities, city)
			continue
		}
		if len(cities) > 0 {
			return cities, nil
		}
		if _, err := fmt.Fprintln(c.out, EmptyHint); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cities: %w", err)
	}
	if len(cities) == 0 {
		return nil, ErrNoCities
	}
	return cities, nil
}

// FormCollector asks for the cities with a multi-line form field.
type FormCollector struct {
	in  io.Reader
	out io.Writer
}

// NewFormCollector builds a form collector. Nil streams use the terminal.
func NewFormCollector(in io.Reader, out io.Writer) *FormCollector {
	return &FormCollector{in: in, out: out}
}

func (c *FormCollector) Collect(ctx context.Context) ([]string, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(formTitle).
			Description(formSubtitle).
			Value(&text).
			Validate(validateCities),
	))
	if c.in != nil {
		form = form.WithInput(c.in)
	}
	if c.out != nil {
		form = form.WithOutput(c.out)
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrNoCities
		}
		return nil, fmt.Errorf("city form: %w", err)
	}
	cities := ParseCities(text)
	if len(cities) == 0 {
		return nil, ErrNoCities
	}
	return cities, nil
}

func validateCities(text string) error {
	if len(ParseCities(text)) == 0 {
		return errors.New(EmptyHint)
	}
	return nil
}

// StaticCollector returns cities fixed up front, such as from flags.
type StaticCollector struct {
	cities []string
}

func NewStaticCollector(cities []string) *StaticCollector {
	return &StaticCollector{cities: cities}
}

func (c *StaticCollector) Collect(_ context.Context) ([]string, error) {
	var out []string
	for _, city := range c.cities {
		out = append(out, ParseCities(city)...)
	}
	if len(out) == 0 {
		return nil, ErrNoCities
	}
	return out, nil
}

// ParseCities splits text into trimmed, non-blank lines.
func ParseCities(text string) []string {
	var cities []string
	for _, line := range strings.Split(text, "\n") {
		if city := strings.TrimSpace(line); city != "" {
			cities = append(cities, city)
		}
	}
	return cities
}
