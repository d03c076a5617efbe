// Package flags holds the urfave/cli flag categories shared by the
// yulc CLI's flag definitions, grounded on the teacher's
// cmd/evm/chaincmd.go Category convention.
package flags

const (
	// CompilerCategory groups flags that affect how input is parsed and
	// lowered (--optimization, --libraries, --base-path, ...).
	CompilerCategory = "COMPILER"
	// OutputCategory groups flags that affect what gets written and
	// where (--output-dir, --combined-json, --overwrite, --dump-*).
	OutputCategory = "OUTPUT"
	// LoggingCategory groups verbosity / log-format flags.
	LoggingCategory = "LOGGING"
)
