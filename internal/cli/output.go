package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/models"
)

// Fields is the body of a JSON result next to "success".
type Fields map[string]any

type errorBody struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

type failure struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

var (
	errLabel  = color.New(color.FgRed, color.Bold)
	hintLabel = color.New(color.FgCyan)
)

// OutputFormatter writes command results as JSON (--json), bare IDs
// (--quiet) or colored text.
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out    io.Writer
	ErrOut io.Writer
}

// NewFormatter reads the --json and --quiet flags of cmd and writes to the
// command's streams.
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	f.JSON, _ = cmd.Flags().GetBool("json")
	f.Quiet, _ = cmd.Flags().GetBool("quiet")
	return f
}

// AddOutputFlags registers --json and --quiet on cmd.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Writer returns the stream human output goes to.
func (f *OutputFormatter) Writer() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}

// Printf writes human output.
func (f *OutputFormatter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(f.Writer(), format, args...)
}

// WriteJSON encodes v as one JSON line.
func (f *OutputFormatter) WriteJSON(v any) error {
	return json.NewEncoder(f.Writer()).Encode(v)
}

// Result writes a successful JSON result: fields plus "success": true.
func (f *OutputFormatter) Result(fields Fields) error {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	return f.WriteJSON(out)
}

// Error reports a failure with a stable code.
func (f *OutputFormatter) Error(code, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion reports a failure and a hint for fixing it.
func (f *OutputFormatter) ErrorWithSuggestion(code, message, suggestion string) error {
	return f.report(errorBody{Code: code, Message: message, Suggestion: suggestion})
}

func (f *OutputFormatter) report(body errorBody) error {
	if f.JSON {
		return f.WriteJSON(failure{Error: body})
	}

	w := f.errWriter()
	if len(body.Fields) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", errLabel.Sprint("Error:"), body.Message)
	}
	names := make([]string, 0, len(body.Fields))
	for name := range body.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", errLabel.Sprint("Error:"), name, body.Fields[name])
	}
	if body.Suggestion != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", hintLabel.Sprint("Suggestion:"), body.Suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped with its exit code. Validation
// errors list every failing field.
func (f *OutputFormatter) Fail(err error) error {
	return f.FailWithSuggestion(err, "")
}

// FailWithSuggestion is Fail with a hint for the user.
func (f *OutputFormatter) FailWithSuggestion(err error, suggestion string) error {
	code, exit := Classify(err)
	body := errorBody{Code: code, Message: err.Error(), Suggestion: suggestion}
	if fields := models.FieldErrors(err); len(fields) > 0 {
		body.Message = "validation failed"
		body.Fields = fields
	}
	_ = f.report(body)
	return Exit(exit, err)
}

// Usage reports a usage error.
func (f *OutputFormatter) Usage(message, suggestion string) error {
	_ = f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion)
	return Exit(ExitUsage, fmt.Errorf("%s", message))
}
