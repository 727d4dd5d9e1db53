package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

// usageError marks an error caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// checkArgs wraps a positional argument validator so its failures count as
// usage errors.
func checkArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) || catalog.IsUserError(err) {
		return exitUserError
	}
	return exitSysError
}

// writeError writes err as a {"code","message"} JSON object.
func writeError(w io.Writer, err error) {
	body := catalog.NewErrorBody(err)
	var ue usageError
	if errors.As(err, &ue) && !catalog.IsUserError(ue.err) {
		body.Code = http.StatusBadRequest
	}
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// parseParams turns key=value arguments into list parameters.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usageError{fmt.Errorf("invalid parameter %q (expected key=value)", arg)}
		}
		params[key] = value
	}
	return params, nil
}

// readFields decodes a JSON object of field updates from data, or from the
// named file when data is empty. A missing or "-" file reads stdin.
func readFields(cmd *cobra.Command, data, file string) (updater.Fields, error) {
	var r io.Reader
	switch {
	case data != "":
		r = strings.NewReader(data)
	case file == "" || file == "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(file)
		if err != nil {
			return nil, usageError{err}
		}
		defer f.Close()
		r = f
	}
	fields, err := updater.DecodeFields(r)
	if err != nil {
		return nil, usageError{err}
	}
	return fields, nil
}

// addDataFlags registers the --data and --file flags of commands reading
// field updates.
func addDataFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "JSON object of fields")
	cmd.Flags().StringVarP(file, "file", "f", "", "file holding the JSON object of fields (default: stdin)")
}
