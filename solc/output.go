package solc

// Output is the standard-json output the core produces (spec.md §6
// "per (file, contract) fills ir_optimized..., evm.legacyAssembly...,
// evm.bytecode..., factory_dependencies..., hash..."), grounded on
// original_source/src/solc/standard_json/output/contract/mod.rs.
type Output struct {
	Contracts map[string]map[string]Contract `json:"contracts,omitempty"`
	Errors    []Error                        `json:"errors,omitempty"`
	Version   string                         `json:"version"`
}

// Contract is one (file, contract-name) entry of Output.Contracts.
// IRYulOptimized carries the lowered LLVM IR text: compiler.CompileProject
// sets it when the irOptimized output is selected, and the single-file
// CLI mode always sets it. EVM.LegacyAssembly is never filled.
type Contract struct {
	IRYulOptimized      *string           `json:"irOptimized,omitempty"`
	EVM                 *EVMOutput        `json:"evm,omitempty"`
	FactoryDependencies map[string]string `json:"factoryDependencies,omitempty"`
	Hash                *string           `json:"hash,omitempty"`
}

// EVMOutput carries the assembly input (nulled after lowering) and the
// bytecode this compiler produced.
type EVMOutput struct {
	LegacyAssembly *RawAssembly `json:"legacyAssembly,omitempty"`
	Bytecode       *Bytecode    `json:"bytecode,omitempty"`
}

// RawAssembly is the legacy-assembly JSON input/echo form (spec.md §6
// "Legacy-assembly JSON schema consumed"): a flat instruction list plus
// a data section that may itself recurse into sub-assemblies.
type RawAssembly struct {
	Code []RawInstruction     `json:"code"`
	Data map[string]DataEntry `json:"data,omitempty"`
}

// RawInstruction is one entry of RawAssembly.Code.
type RawInstruction struct {
	Begin    int    `json:"begin"`
	End      int    `json:"end"`
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Source   int    `json:"source"`
	JumpType string `json:"jumpType,omitempty"`
}

// DataEntry is one entry of RawAssembly.Data: either a nested
// sub-assembly or a plain hex-string data blob (solc distinguishes the
// two by JSON shape: object vs. string).
type DataEntry struct {
	Assembly *RawAssembly
	Hex      string
}

// Bytecode is the hex-encoded compiled bytecode (spec.md §6 "evm.
// bytecode (hex, zkEVM)").
type Bytecode struct {
	Object string `json:"object"`
}

// Error is one standard-json diagnostic entry (spec.md §6 "Error
// JSON"), grounded on
// original_source/src/solc/standard_json/output/error/mod.rs.
type Error struct {
	Component        string          `json:"component"`
	ErrorCode        string          `json:"errorCode,omitempty"`
	FormattedMessage string          `json:"formattedMessage"`
	Message          string          `json:"message"`
	Severity         string          `json:"severity"`
	SourceLocation   *SourceLocation `json:"sourceLocation,omitempty"`
	Type             string          `json:"type"`
}

// SourceLocation locates an Error within a source file.
type SourceLocation struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

const severityWarning = "warning"

// WarningEcrecover builds the "ecrecover use" diagnostic (spec.md §8
// scenario 4, §7 "Warnings... ecrecover use"), grounded on the
// original's Error::warning_ecrecover.
func WarningEcrecover(file string) Error {
	message := "Warning: It seems like you are using ecrecover to validate signature of a user account.\n" +
		"This may come with native account abstraction support, so it is recommended NOT to rely on\n" +
		"the fact that an account has an ECDSA private key attached to it, since it may be governed\n" +
		"by a multisig or use a different signature scheme entirely."
	e := Error{
		Component:        "general",
		FormattedMessage: message,
		Message:          message,
		Severity:         severityWarning,
		Type:             "Warning",
	}
	if file != "" {
		e.PushContractPath(file)
	}
	return e
}

// WarningExtcodesize builds the "extcodesize use" diagnostic (spec.md
// §7 "extcodesize use").
func WarningExtcodesize(file string) Error {
	message := "Warning: Your code or one of its dependencies uses the 'extcodesize' instruction, which\n" +
		"may behave unexpectedly in an environment with native account abstraction."
	e := Error{
		Component:        "general",
		FormattedMessage: message,
		Message:          message,
		Severity:         severityWarning,
		Type:             "Warning",
	}
	if file != "" {
		e.PushContractPath(file)
	}
	return e
}

// PushContractPath appends the "--> file" suffix spec.md §6 requires
// once a diagnostic's contract path is known, matching the original's
// Error::push_contract_path.
func (e *Error) PushContractPath(path string) {
	e.FormattedMessage += "\n--> " + path + "\n"
}
