// Package debug gates verbose diagnostic logging behind environment
// variables, in the style of the teacher's own debug package: one bool per
// concern, read once at process start, exposed through zero-arg accessors.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type flags struct {
	Canon    bool
	Cache    bool
	Generate bool
	Parse    bool
	Eval     bool
}

var d *flags

func init() {
	d = &flags{
		Canon:    boolEnv("SEMIFRAME_DEBUG_CANON"),
		Cache:    boolEnv("SEMIFRAME_DEBUG_CACHE"),
		Generate: boolEnv("SEMIFRAME_DEBUG_GENERATE"),
		Parse:    boolEnv("SEMIFRAME_DEBUG_PARSE"),
		Eval:     boolEnv("SEMIFRAME_DEBUG_EVAL"),
	}
}

func boolEnv(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func Canon() bool    { return d.Canon }
func Cache() bool    { return d.Cache }
func Generate() bool { return d.Generate }
func Parse() bool    { return d.Parse }
func Eval() bool     { return d.Eval }

// Logf writes a formatted diagnostic line to stderr. Callers gate every
// call behind the relevant accessor above so the cost of formatting is
// paid only when the flag is set.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
