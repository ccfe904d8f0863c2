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

package kompile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	command string
	args    []string
}

// fakeRunner records every command instead of running it, failing from
// failAfter onward.
type fakeRunner struct {
	commands  []recordedCommand
	failAfter int
}

func (r *fakeRunner) Run(command string, args ...string) error {
	r.commands = append(r.commands, recordedCommand{command, args})
	if r.failAfter > 0 && len(r.commands) > r.failAfter {
		return errors.New("exit status 113")
	}
	return nil
}

func fullOptions() Options {
	return Options{
		DefinitionDir:    "/tmp/avm-llvm",
		MainFile:         "avm-execution.md",
		Includes:         []string{"lib/include/kframework", "deps/plugin"},
		MainModuleName:   "AVM-EXECUTION",
		SyntaxModuleName: "AVM-EXECUTION-SYNTAX",
		Backend:          BackendLLVM,
		MDSelector:       "k & ! symbolic",
		Verbose:          true,
		EmitJSON:         true,
		HookNamespaces:   []string{"KRYPTO", "CLARITY"},
		HookCppFiles:     []string{"plugin/krypto.cpp"},
		HookClangFlags:   []string{" -lssl ", "-lcrypto"},
		Coverage:         true,
		GenBisonParser:   true,
	}
}

func TestKompileLLVMArgs(t *testing.T) {
	expected := []string{
		"--output-definition", "/tmp/avm-llvm",
		"avm-execution.md",
		"--verbose",
		"--emit-json",
		"--gen-glr-bison-parser",
		"--main-module", "AVM-EXECUTION",
		"--syntax-module", "AVM-EXECUTION-SYNTAX",
		"-I", "lib/include/kframework",
		"-I", "deps/plugin",
		"--md-selector", "k & ! symbolic",
		"--hook-namespaces", "KRYPTO CLARITY",
		"-ccopt", "-c", "-ccopt", "-o", "-ccopt", "/tmp/avm-llvm/partial.o",
		"--coverage",
	}
	require.Equal(t, expected, KompileLLVMArgs(fullOptions()))
}

func TestKompileLLVMArgsMinimal(t *testing.T) {
	opts := Options{
		DefinitionDir: "/tmp/avm-llvm",
		MainFile:      "avm-execution.md",
		Backend:       BackendLLVM,
	}
	expected := []string{
		"--output-definition", "/tmp/avm-llvm",
		"avm-execution.md",
		"--verbose",
		"--emit-json",
		"-ccopt", "-c", "-ccopt", "-o", "-ccopt", "/tmp/avm-llvm/partial.o",
	}
	require.Equal(t, expected, KompileLLVMArgs(opts))
}

func TestLLVMKompileArgs(t *testing.T) {
	expected := []string{
		"/tmp/avm-llvm/partial.o", "main", "--",
		"plugin/krypto.cpp",
		"-o", "/tmp/avm-llvm/interpreter",
		"-lssl", "-lcrypto",
	}
	require.Equal(t, expected, LLVMKompileArgs(fullOptions()))
}

func TestKompileHaskellArgs(t *testing.T) {
	opts := fullOptions()
	opts.Backend = BackendHaskell
	expected := []string{
		"--output-definition", "/tmp/avm-llvm",
		"avm-execution.md",
		"--verbose",
		"--emit-json",
		"--backend", "haskell",
		"--main-module", "AVM-EXECUTION",
		"--syntax-module", "AVM-EXECUTION-SYNTAX",
		"--md-selector", "k & ! symbolic",
		"--hook-namespaces", "KRYPTO CLARITY",
		"--concrete-rules",
		"AVM-INITIALIZATION.initGlobals,AVM-EXECUTION.startExecution,TEAL-EXECUTION.initContext,TEAL-TYPES.getAppAddress,TEAL-TYPES.getTxnGroupID",
		"-I", "lib/include/kframework",
		"-I", "deps/plugin",
	}
	require.Equal(t, expected, KompileHaskellArgs(opts))
}

func TestKompileHaskellArgsQuiet(t *testing.T) {
	opts := Options{
		DefinitionDir: "/tmp/avm-haskell",
		MainFile:      "avm-execution.md",
		Backend:       BackendHaskell,
	}
	args := KompileHaskellArgs(opts)
	require.NotContains(t, args, "--verbose")
	require.NotContains(t, args, "--emit-json")
}

func TestKompileLLVMRunsBothStages(t *testing.T) {
	runner := &fakeRunner{}
	handle, err := Kompile(fullOptions(), runner)
	require.NoError(t, err)
	require.Equal(t, "/tmp/avm-llvm", handle.DefinitionDir())

	require.Len(t, runner.commands, 2)
	require.Equal(t, "kompile", runner.commands[0].command)
	require.Equal(t, KompileLLVMArgs(fullOptions()), runner.commands[0].args)
	require.Equal(t, "llvm-kompile", runner.commands[1].command)
	require.Equal(t, LLVMKompileArgs(fullOptions()), runner.commands[1].args)
}

func TestKompileHaskellRunsOneStage(t *testing.T) {
	opts := fullOptions()
	opts.Backend = BackendHaskell

	runner := &fakeRunner{}
	handle, err := Kompile(opts, runner)
	require.NoError(t, err)
	require.NotNil(t, handle)

	require.Len(t, runner.commands, 1)
	require.Equal(t, "kompile", runner.commands[0].command)
	require.Equal(t, KompileHaskellArgs(opts), runner.commands[0].args)
}

func TestKompileStageFailureAborts(t *testing.T) {
	runner := &fakeRunner{failAfter: 1}
	handle, err := Kompile(fullOptions(), runner)
	require.Error(t, err)
	require.Nil(t, handle)
	// The second stage ran and failed; nothing after it was attempted.
	require.Len(t, runner.commands, 2)
}

func TestKompileFirstStageFailureSkipsLink(t *testing.T) {
	failing := &failingRunner{}
	handle, err := Kompile(fullOptions(), failing)
	require.Error(t, err)
	require.Nil(t, handle)
	require.Equal(t, 1, failing.calls)
}

type failingRunner struct {
	calls int
}

func (r *failingRunner) Run(command string, args ...string) error {
	r.calls++
	return errors.New("exit status 1")
}

func TestKompileUnsupportedBackend(t *testing.T) {
	opts := fullOptions()
	opts.Backend = "java"

	runner := &fakeRunner{}
	_, err := Kompile(opts, runner)
	require.Error(t, err)
	require.Empty(t, runner.commands)
}
