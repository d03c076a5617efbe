// Command yulc is the top-level driver of spec.md §6: it assembles a
// Config from the command line, then either lowers a single Yul
// source file or drives a standard-json Input/Output round-trip
// through the compiler package.
//
// Grounded on _examples/luxfi-evm/cmd/evm-node/chaincmd/chaincmd.go's
// cli.Command/cli.Flag/Category convention for the flag surface
// itself (see flags.go), with --optimization validated the way
// config.BuildConfig validates it for the pflag/viper entrypoint that
// embeds this same Config type.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "yulc",
		Usage: "compile Yul source or EVM legacy assembly to LLVM IR",
		Flags: appFlags,
		Action: func(c *cli.Context) error {
			cfg := configFromContext(c)
			if cfg.Optimization < 0 || cfg.Optimization > 3 {
				return fmt.Errorf("yulc: --%s must be 0-3, got %d", "optimization", cfg.Optimization)
			}
			return run(cfg, c.Bool(verboseFlagName))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(diagnosticsWriter(), "yulc: %s\n", err)
		os.Exit(1)
	}
}
