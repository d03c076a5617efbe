package parser

// Warning is a non-fatal diagnostic collected during AST traversal
// (spec.md §7: ecrecover/extcodesize use) and later surfaced in the
// standard-JSON output's `errors` array with severity "warning"
// (spec.md §6).
type Warning struct {
	Message string
	Pos     Position
}

// knownWarnings maps a builtin function name to the message emitted
// when the parser sees it called, grounded on spec.md §8 scenario 4
// ("Warning: It seems like you are using ecrecover").
var knownWarnings = map[string]string{
	"ecrecover":   "Warning: It seems like you are using ecrecover to validate a signature. Note that signatures can be tampered with and do not uniquely identify a transaction, so it is generally a bad idea to use them for replay protection.",
	"extcodesize": "Warning: It looks like you are checking if an address is a contract by testing its code size. This check can easily be circumvented during contract construction and should generally be avoided.",
}

// checkBuiltinWarning returns the warning message for a builtin
// function call, if any.
func checkBuiltinWarning(name string) (string, bool) {
	msg, ok := knownWarnings[name]
	return msg, ok
}
