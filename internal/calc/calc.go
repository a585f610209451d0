// Package calc evaluates inline arithmetic for the launcher's = prefix by
// shelling out to bc. Every failure is "no result" so the query falls
// through to normal filtering.
package calc

import (
	"os/exec"
	"strings"
)

// Calc evaluates expressions with bc -l at a fixed scale of 4.
type Calc struct{}

// New returns a bc-backed calculator.
func New() *Calc { return &Calc{} }

// Sanitize trims the = markers and rejects anything outside the arithmetic
// charset. ok=false means the expression must not reach bc.
func Sanitize(expr string) (string, bool) {
	e := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(expr), "=")))
	if e == "" {
		return "", false
	}
	for _, r := range e {
		if r >= '0' && r <= '9' {
			continue
		}
		if !strings.ContainsRune("+-*/.^() ", r) {
			return "", false
		}
	}
	return e, true
}

// Normalize strips trailing zeros from a fractional result. "3.5000" →
// "3.5", "2.0000" → "2"; a result that trims to nothing collapses to "0".
func Normalize(result string) string {
	result = strings.TrimSpace(result)
	if !strings.Contains(result, ".") {
		return result
	}
	cleaned := strings.TrimRight(strings.TrimRight(result, "0"), ".")
	if cleaned == "" || cleaned == "-" {
		return "0"
	}
	return cleaned
}

// Eval evaluates an expression. ok=false on any sanitization or bc failure.
func (c *Calc) Eval(expr string) (string, bool) {
	e, ok := Sanitize(expr)
	if !ok {
		return "", false
	}

	cmd := exec.Command("bc", "-l")
	cmd.Env = append(cmd.Environ(), "BC_LINE_LENGTH=0")
	cmd.Stdin = strings.NewReader("scale=4; " + e + "\n")
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	result := Normalize(string(out))
	if result == "" {
		return "", false
	}
	return result, true
}
