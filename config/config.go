// Package config assembles the CLI flag surface of spec.md §6 with an
// optional project config file, grounded on
// _examples/luxfi-evm/cmd/simulator/main/main.go's
// BuildFlagSet/BuildViper/BuildConfig calling convention (pflag flags
// bound into a viper.Viper, then unmarshaled into a typed Config), and
// _examples/magnaopus1-SYNN/cmd/mainnet/mainnet.go's
// viper.SetConfigFile/ReadInConfig/Unmarshal pattern for the optional
// yulc.yaml layer underneath the flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag keys, mirrored 1:1 onto spec.md §6's command line surface.
const (
	KeyInput          = "input"
	KeyStandardJSON   = "standard-json"
	KeyCombinedJSON   = "combined-json"
	KeyOptimization   = "optimization"
	KeyOutputDir      = "output-dir"
	KeyOverwrite      = "overwrite"
	KeyLibraries      = "libraries"
	KeyDumpYul        = "dump-yul"
	KeyDumpLLVM       = "dump-llvm"
	KeyDumpAssembly   = "dump-assembly"
	KeyBasePath       = "base-path"
	KeyIncludePath    = "include-path"
	KeyAllowPaths     = "allow-paths"
	KeyWorkers        = "workers"
	KeyConfigFile     = "config"
)

// Config is the fully resolved compiler configuration: CLI flags
// layered over an optional project config file (spec.md §6's "project
// can carry an optional yulc.yaml").
type Config struct {
	Input        string
	StandardJSON bool
	CombinedJSON []string
	Optimization int
	OutputDir    string
	Overwrite    bool
	Libraries    []string
	DumpYul      bool
	DumpLLVM     bool
	DumpAssembly bool
	BasePath     string
	IncludePaths []string
	AllowPaths   []string
	Workers      int
}

// BuildFlagSet declares every flag spec.md §6 names, matching the
// teacher's convention of a standalone flag-set constructor the driver
// parses before building a Viper.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("yulc", pflag.ContinueOnError)
	fs.String(KeyInput, "", "input .yul or .sol file (mutually exclusive with --standard-json)")
	fs.Bool(KeyStandardJSON, false, "read Input/produce Output as standard-json on stdin/stdout")
	fs.StringSlice(KeyCombinedJSON, nil, "comma-separated combined-json selectors (abi,bin,bin-runtime,hashes)")
	fs.Int(KeyOptimization, 0, "optimization level 0-3")
	fs.String(KeyOutputDir, "", "directory to persist .zbin/.zasm/combined.json into")
	fs.Bool(KeyOverwrite, false, "overwrite existing output files")
	fs.StringSlice(KeyLibraries, nil, "file:contract=0xADDR library address, repeatable")
	fs.Bool(KeyDumpYul, false, "dump the Yul IR consumed")
	fs.Bool(KeyDumpLLVM, false, "dump the emitted LLVM IR text")
	fs.Bool(KeyDumpAssembly, false, "dump the decoded legacy assembly")
	fs.String(KeyBasePath, "", "base path passed through to the upstream Solidity compiler")
	fs.StringSlice(KeyIncludePath, nil, "extra include path, repeatable")
	fs.String(KeyAllowPaths, "", "comma-separated list of additional allowed paths")
	fs.Int(KeyWorkers, 0, "worker pool size for project.Build (0: GOMAXPROCS)")
	fs.String(KeyConfigFile, "", "optional yulc.yaml project config file")
	return fs
}

// BuildViper parses args against fs, binds every flag into a fresh
// Viper, and layers an optional config file underneath (flags always
// win, matching viper's own BindPFlags precedence).
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path, _ := fs.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	return v, nil
}

// BuildConfig extracts a typed Config from v, using spf13/cast for the
// handful of values that may arrive as either a flag string or a
// config-file-native type (e.g. "optimization: 2" as a YAML int vs.
// "--optimization=2" as a pflag string).
func BuildConfig(v *viper.Viper) (*Config, error) {
	optimization, err := cast.ToIntE(v.Get(KeyOptimization))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyOptimization, err)
	}
	if optimization < 0 || optimization > 3 {
		return nil, fmt.Errorf("config: %s must be 0-3, got %d", KeyOptimization, optimization)
	}

	workers, err := cast.ToIntE(v.Get(KeyWorkers))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyWorkers, err)
	}

	allowPaths := cast.ToString(v.Get(KeyAllowPaths))
	var allowPathList []string
	if allowPaths != "" {
		allowPathList = strings.Split(allowPaths, ",")
	}

	return &Config{
		Input:        v.GetString(KeyInput),
		StandardJSON: v.GetBool(KeyStandardJSON),
		CombinedJSON: v.GetStringSlice(KeyCombinedJSON),
		Optimization: optimization,
		OutputDir:    v.GetString(KeyOutputDir),
		Overwrite:    v.GetBool(KeyOverwrite),
		Libraries:    v.GetStringSlice(KeyLibraries),
		DumpYul:      v.GetBool(KeyDumpYul),
		DumpLLVM:     v.GetBool(KeyDumpLLVM),
		DumpAssembly: v.GetBool(KeyDumpAssembly),
		BasePath:     v.GetString(KeyBasePath),
		IncludePaths: v.GetStringSlice(KeyIncludePath),
		AllowPaths:   allowPathList,
		Workers:      workers,
	}, nil
}

// ParseLibraries turns "file:contract=0xADDR" entries (spec.md §6's
// --libraries flag) into the nested file->contract->address map
// solc.Settings.Libraries uses.
func ParseLibraries(entries []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, entry := range entries {
		eq := strings.LastIndex(entry, "=")
		if eq < 0 {
			return nil, fmt.Errorf("config: malformed --libraries entry %q (want file:contract=0xADDR)", entry)
		}
		path, addr := entry[:eq], entry[eq+1:]
		colon := strings.LastIndex(path, ":")
		if colon < 0 {
			return nil, fmt.Errorf("config: malformed --libraries entry %q (want file:contract=0xADDR)", entry)
		}
		file, contract := path[:colon], path[colon+1:]
		if out[file] == nil {
			out[file] = make(map[string]string)
		}
		out[file][contract] = addr
	}
	return out, nil
}
