package execution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/compozy/foodietour/sdk/client"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const (
	outputLabel  = "Workflow Output:"
	failedLabel  = "Workflow failed:"
	errorLabel   = "Error:"
	pendingLabel = "Execution:"
)

// ParseFormat maps a configured format name to a Format. "auto" and the empty
// string resolve to text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", name)
	}
}

// Reporter writes the result of a tracked execution to the console.
type Reporter struct {
	w       io.Writer
	format  Format
	styled  bool
	success lipgloss.Style
	failure lipgloss.Style
}

type ReporterOption func(*Reporter)

func WithFormat(format Format) ReporterOption {
	return func(r *Reporter) {
		if format != "" {
			r.format = format
		}
	}
}

// WithStyles colors the text labels. Only meaningful on a terminal.
func WithStyles(success, failure lipgloss.Style) ReporterOption {
	return func(r *Reporter) {
		r.styled = true
		r.success = success
		r.failure = failure
	}
}

func NewReporter(w io.Writer, opts ...ReporterOption) *Reporter {
	r := &Reporter{w: w, format: FormatText}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type jsonReport struct {
	ExecutionID string          `json:"execution_id,omitempty"`
	Status      string          `json:"status,omitempty"`
	Polls       int             `json:"polls,omitempty"`
	Output      json.RawMessage `json:"output,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Outcome prints the terminal state of an execution. A successful execution
// prints only its output and a failed one only its error.
func (r *Reporter) Outcome(outcome *Outcome) error {
	if outcome == nil || outcome.Execution == nil {
		return r.Error(fmt.Errorf("no execution to report"))
	}
	exec := outcome.Execution
	if r.format == FormatJSON {
		report := jsonReport{ExecutionID: exec.ID, Status: exec.Status.String(), Polls: outcome.Polls}
		if exec.Succeeded() {
			report.Output = compactPayload(exec.Output)
		} else {
			report.Error = exec.Error
		}
		return r.writeJSON(report)
	}
	if exec.Succeeded() {
		return r.line(r.label(outputLabel, true), FormatPayload(exec.Output))
	}
	return r.line(r.label(failedLabel, false), exec.Error)
}

// Pending prints an execution that has not finished yet.
func (r *Reporter) Pending(exec *client.Execution) error {
	if exec == nil {
		return r.Error(fmt.Errorf("no execution to report"))
	}
	if r.format == FormatJSON {
		return r.writeJSON(jsonReport{ExecutionID: exec.ID, Status: exec.Status.String()})
	}
	return r.line(r.label(pendingLabel, true), fmt.Sprintf("%s is %s", exec.ID, exec.Status))
}

// Error prints a failure that happened before an outcome was available.
func (r *Reporter) Error(err error) error {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if r.format == FormatJSON {
		return r.writeJSON(jsonReport{Error: msg})
	}
	return r.line(r.label(errorLabel, false), msg)
}

func (r *Reporter) label(text string, ok bool) string {
	if !r.styled {
		return text
	}
	if ok {
		return r.success.Render(text)
	}
	return r.failure.Render(text)
}

func (r *Reporter) line(label, body string) error {
	_, err := fmt.Fprintf(r.w, "%s %s\n", label, body)
	return err
}

func (r *Reporter) writeJSON(report jsonReport) error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// FormatPayload renders an execution output for a single console line. JSON
// strings are unquoted and anything else is compacted. Non-JSON bytes are
// printed as they are.
func FormatPayload(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed)
	}
	result := gjson.ParseBytes(trimmed)
	if result.Type == gjson.String {
		return result.String()
	}
	return string(pretty.Ugly(trimmed))
}

func compactPayload(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !gjson.ValidBytes(trimmed) {
		return nil
	}
	return json.RawMessage(pretty.Ugly(trimmed))
}
