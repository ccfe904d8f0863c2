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

// Package kavm binds a compiled AVM semantics definition: it hands out
// template configuration terms for the definition's sorts and parses TEAL
// programs through the definition's generated parser.
package kavm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rejkowic/avm-semantics/kast"
	"github.com/rejkowic/avm-semantics/logging"
	"github.com/rejkowic/avm-semantics/util"
)

// Artifact names inside a compiled definition directory.
const (
	// InterpreterName is the native interpreter executable produced by the
	// llvm backend link stage.
	InterpreterName = "interpreter"

	// PartialObjectName is the intermediate object the llvm backend
	// compile stage produces.
	PartialObjectName = "partial.o"

	tealParserName = "parser_PGM"
)

// KAVM is a handle to a compiled AVM semantics definition directory.
type KAVM struct {
	Definition

	definitionDir string
	log           logging.Logger
}

// New returns a handle bound to a compiled definition directory.
func New(definitionDir string) *KAVM {
	return &KAVM{
		definitionDir: definitionDir,
		log:           logging.Base(),
	}
}

// DefinitionDir returns the directory the handle is bound to.
func (k *KAVM) DefinitionDir() string {
	return k.definitionDir
}

// InterpreterPath returns the path of the definition's native interpreter.
func (k *KAVM) InterpreterPath() string {
	return filepath.Join(k.definitionDir, InterpreterName)
}

// ParseTeal parses a TEAL source file through the definition's generated
// parser and returns the program term.
func (k *KAVM) ParseTeal(path string) (kast.KInner, error) {
	parser := filepath.Join(k.definitionDir, tealParserName)
	stdout, stderr, err := util.ExecAndCaptureOutput(parser, path)
	if err != nil {
		return nil, fmt.Errorf("parsing TEAL program %s failed: %s: %w", path, stderr, err)
	}
	return kast.FromJSON([]byte(stdout))
}

// ParseTealSource parses TEAL program text through the definition's
// generated parser and returns the program term.
func (k *KAVM) ParseTealSource(src string) (kast.KInner, error) {
	tmp, err := os.CreateTemp("", "kavm-teal-*.teal")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(src); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return k.ParseTeal(tmp.Name())
}
