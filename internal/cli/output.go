// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/fibmod/internal/format"
	"github.com/agbru/fibmod/internal/orchestration"
	"github.com/agbru/fibmod/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet mode suppresses everything but the result value.
	Quiet bool
	// JSON outputs the result as a single JSON object.
	JSON bool
}

// jsonResult is the wire shape of a single backend result in JSON mode.
type jsonResult struct {
	N        string `json:"n"`
	Mod      string `json:"mod"`
	Backend  string `json:"backend"`
	Result   string `json:"result,omitempty"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// DisplayResult outputs a single backend result according to the output
// configuration.
//
// Parameters:
//   - out: The output writer.
//   - n, mod: The request inputs as decimal strings.
//   - res: The backend result to display.
//   - cfg: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding fails.
func DisplayResult(out io.Writer, n, mod string, res orchestration.Result, cfg OutputConfig) error {
	if cfg.JSON {
		return displayJSON(out, n, mod, res)
	}
	if cfg.Quiet {
		if res.Err != nil {
			return res.Err
		}
		fmt.Fprintln(out, res.Value.String())
		return nil
	}

	fmt.Fprintf(out, "%s\n", ui.RenderHeader("--- Result ---"))
	if res.Err != nil {
		fmt.Fprintf(out, "%s%s failed: %v%s\n", ui.ColorError(), res.Name, res.Err, ui.ColorReset())
		return res.Err
	}
	fmt.Fprintf(out, "F(%s) mod %s = %s\n", n, mod, ui.RenderValue(res.Value.String()))
	fmt.Fprintf(out, "%s\n", ui.RenderDim(fmt.Sprintf("backend: %s, duration: %s",
		res.Name, format.ExecutionDuration(res.Duration))))
	return nil
}

func displayJSON(out io.Writer, n, mod string, res orchestration.Result) error {
	jr := jsonResult{
		N:        n,
		Mod:      mod,
		Backend:  res.Name,
		Duration: format.ExecutionDuration(res.Duration),
	}
	if res.Err != nil {
		jr.Error = res.Err.Error()
	} else {
		jr.Result = res.Value.String()
	}
	enc := json.NewEncoder(out)
	return enc.Encode(jr)
}

// DisplayComparisonTable displays the cross-backend comparison summary with
// backend names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func DisplayComparisonTable(out io.Writer, results []orchestration.Result) {
	fmt.Fprintf(out, "\n%s\n", ui.RenderHeader("--- Comparison Summary ---"))

	// Find the maximum backend name width for proper alignment.
	maxNameLen := len("Backend")
	maxDurationLen := len("Duration")
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		if d := format.ExecutionDuration(res.Duration); len(d) > maxDurationLen {
			maxDurationLen = len(d)
		}
	}

	fmt.Fprintf(out, "%sBackend%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Backend")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%sfailure (%v)%s", ui.ColorError(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%ssuccess: %s%s", ui.ColorSuccess(), res.Value.String(), ui.ColorReset())
		}
		duration := format.ExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorPrimary(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorWarning(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// DisplayMismatch reports a disagreement between two backends.
func DisplayMismatch(out io.Writer, mm orchestration.Mismatch) {
	fmt.Fprintf(out, "%sMISMATCH:%s %s = %s, but %s = %s\n",
		ui.ColorError(), ui.ColorReset(),
		mm.A.Name, mm.A.Value.String(),
		mm.B.Name, mm.B.Value.String())
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
