// Copyright (C) 2022-2023 Algorand, Inc.
// This file is part of avm-semantics
//
// avm-semantics is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// avm-semantics is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with avm-semantics.  If not, see <https://www.gnu.org/licenses/>.

// Package kompile drives the K toolchain to compile the AVM semantics
// definition, either into a native interpreter (llvm backend, a two-stage
// kompile + llvm-kompile pipeline) or for the symbolic execution engine
// (haskell backend, a single kompile invocation).
package kompile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rejkowic/avm-semantics/kavm"
	"github.com/rejkowic/avm-semantics/logging"
	"github.com/rejkowic/avm-semantics/util"
)

// Backend selects the K compilation strategy.
type Backend string

const (
	// BackendLLVM compiles the definition into a native interpreter.
	BackendLLVM Backend = "llvm"

	// BackendHaskell compiles the definition for the symbolic execution
	// engine.
	BackendHaskell Backend = "haskell"
)

// Options carries everything the driver needs to assemble the toolchain
// command lines.
type Options struct {
	// DefinitionDir is where the compiled definition and its artifacts are
	// written.
	DefinitionDir string

	// MainFile is the main K source file of the definition.
	MainFile string

	Includes         []string
	MainModuleName   string
	SyntaxModuleName string
	Backend          Backend
	MDSelector       string

	// Verbose and EmitJSON only steer the haskell backend; the llvm
	// pipeline always compiles verbosely with JSON emission.
	Verbose  bool
	EmitJSON bool

	HookNamespaces []string
	HookCppFiles   []string
	HookClangFlags []string

	Coverage       bool
	GenBisonParser bool
}

// Runner runs an external toolchain command to completion.
type Runner interface {
	Run(command string, args ...string) error
}

// ExecRunner runs commands as subprocesses with output attached to the
// calling process.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(command string, args ...string) error {
	return util.ExecPassthrough(command, args...)
}

// Evaluation rules the haskell backend must keep concrete.
var concreteRules = []string{
	"AVM-INITIALIZATION.initGlobals",
	"AVM-EXECUTION.startExecution",
	"TEAL-EXECUTION.initContext",
	"TEAL-TYPES.getAppAddress",
	"TEAL-TYPES.getTxnGroupID",
}

// Kompile compiles the definition per opts and returns a handle bound to
// the definition directory. A non-zero exit from either toolchain stage is
// fatal: the full command line is logged and no handle is returned.
func Kompile(opts Options, runner Runner) (*kavm.KAVM, error) {
	switch opts.Backend {
	case BackendLLVM:
		if err := generateInterpreter(opts, runner); err != nil {
			return nil, err
		}
	case BackendHaskell:
		if err := kompileHaskell(opts, runner); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported backend %s", opts.Backend)
	}
	return kavm.New(opts.DefinitionDir), nil
}

// generateInterpreter runs the two-stage llvm pipeline: kompile the
// definition into a partial object, then link it into the native
// interpreter executable.
func generateInterpreter(opts Options, runner Runner) error {
	if err := runStage(runner, "kompile", KompileLLVMArgs(opts)); err != nil {
		return err
	}
	return runStage(runner, "llvm-kompile", LLVMKompileArgs(opts))
}

func kompileHaskell(opts Options, runner Runner) error {
	return runStage(runner, "kompile", KompileHaskellArgs(opts))
}

func runStage(runner Runner, command string, args []string) error {
	log := logging.Base()
	log.Infof("%s %s", command, strings.Join(args, " "))
	if err := runner.Run(command, args...); err != nil {
		log.Errorf("%s %s", command, strings.Join(args, " "))
		return fmt.Errorf("%s failed: %w", command, err)
	}
	return nil
}

// KompileLLVMArgs assembles the stage-1 kompile command line of the llvm
// pipeline.
func KompileLLVMArgs(opts Options) []string {
	args := []string{
		"--output-definition", opts.DefinitionDir,
		opts.MainFile,
		"--verbose",
		"--emit-json",
	}
	if opts.GenBisonParser {
		args = append(args, "--gen-glr-bison-parser")
	}
	if opts.MainModuleName != "" {
		args = append(args, "--main-module", opts.MainModuleName)
	}
	if opts.SyntaxModuleName != "" {
		args = append(args, "--syntax-module", opts.SyntaxModuleName)
	}
	for _, include := range opts.Includes {
		args = append(args, "-I", include)
	}
	if opts.MDSelector != "" {
		args = append(args, "--md-selector", opts.MDSelector)
	}
	if len(opts.HookNamespaces) > 0 {
		args = append(args, "--hook-namespaces", strings.Join(opts.HookNamespaces, " "))
	}
	args = append(args, "-ccopt", "-c", "-ccopt", "-o", "-ccopt", PartialObjectPath(opts.DefinitionDir))
	if opts.Coverage {
		args = append(args, "--coverage")
	}
	return args
}

// LLVMKompileArgs assembles the stage-2 llvm-kompile command line linking
// the partial object into the interpreter executable.
func LLVMKompileArgs(opts Options) []string {
	args := []string{PartialObjectPath(opts.DefinitionDir), "main", "--"}
	args = append(args, opts.HookCppFiles...)
	args = append(args, "-o", InterpreterPath(opts.DefinitionDir))
	for _, flag := range opts.HookClangFlags {
		args = append(args, strings.TrimSpace(flag))
	}
	return args
}

// KompileHaskellArgs assembles the kompile command line of the haskell
// backend.
func KompileHaskellArgs(opts Options) []string {
	args := []string{
		"--output-definition", opts.DefinitionDir,
		opts.MainFile,
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	if opts.EmitJSON {
		args = append(args, "--emit-json")
	}
	args = append(args, "--backend", string(BackendHaskell))
	if opts.MainModuleName != "" {
		args = append(args, "--main-module", opts.MainModuleName)
	}
	if opts.SyntaxModuleName != "" {
		args = append(args, "--syntax-module", opts.SyntaxModuleName)
	}
	if opts.MDSelector != "" {
		args = append(args, "--md-selector", opts.MDSelector)
	}
	if len(opts.HookNamespaces) > 0 {
		args = append(args, "--hook-namespaces", strings.Join(opts.HookNamespaces, " "))
	}
	args = append(args, "--concrete-rules", strings.Join(concreteRules, ","))
	for _, include := range opts.Includes {
		args = append(args, "-I", include)
	}
	return args
}

// PartialObjectPath is the fixed location of the stage-1 object artifact.
func PartialObjectPath(definitionDir string) string {
	return filepath.Join(definitionDir, kavm.PartialObjectName)
}

// InterpreterPath is the fixed location of the linked interpreter.
func InterpreterPath(definitionDir string) string {
	return filepath.Join(definitionDir, kavm.InterpreterName)
}
