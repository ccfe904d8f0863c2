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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rejkowic/avm-semantics/kompile"
	"github.com/rejkowic/avm-semantics/logging"
)

var kompileOpts kompile.Options
var backendName string

var kompileCmd = &cobra.Command{
	Use:   "kompile -o DEFINITION_DIR MAIN_FILE",
	Short: "Compile the AVM semantics definition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kompileOpts.MainFile = args[0]
		kompileOpts.Backend = kompile.Backend(backendName)
		handle, err := kompile.Kompile(kompileOpts, kompile.ExecRunner{})
		if err != nil {
			logging.Base().Errorf("kompile failed: %v", err)
			os.Exit(1)
		}
		fmt.Printf("definition compiled to %s\n", handle.DefinitionDir())
	},
}

func init() {
	kompileCmd.Flags().StringVarP(&kompileOpts.DefinitionDir, "output-definition", "o", "", "Directory to write the compiled definition to")
	kompileCmd.Flags().StringSliceVarP(&kompileOpts.Includes, "include", "I", nil, "Directories to search for included K files")
	kompileCmd.Flags().StringVar(&kompileOpts.MainModuleName, "main-module", "", "Name of the main K module")
	kompileCmd.Flags().StringVar(&kompileOpts.SyntaxModuleName, "syntax-module", "", "Name of the syntax K module")
	kompileCmd.Flags().StringVar(&backendName, "backend", string(kompile.BackendLLVM), "K backend to compile with (llvm or haskell)")
	kompileCmd.Flags().StringVar(&kompileOpts.MDSelector, "md-selector", "", "Code selector expression for markdown definitions")
	kompileCmd.Flags().BoolVar(&kompileOpts.Verbose, "verbose", true, "Compile verbosely (haskell backend)")
	kompileCmd.Flags().BoolVar(&kompileOpts.EmitJSON, "emit-json", true, "Emit the JSON form of the definition (haskell backend)")
	kompileCmd.Flags().StringSliceVar(&kompileOpts.HookNamespaces, "hook-namespaces", nil, "Hook namespaces to enable")
	kompileCmd.Flags().StringSliceVar(&kompileOpts.HookCppFiles, "hook-cpp-files", nil, "C++ hook implementation files to link in")
	kompileCmd.Flags().StringSliceVar(&kompileOpts.HookClangFlags, "hook-clang-flags", nil, "Extra flags passed through to clang")
	kompileCmd.Flags().BoolVar(&kompileOpts.Coverage, "coverage", false, "Instrument the interpreter for rule coverage")
	kompileCmd.Flags().BoolVar(&kompileOpts.GenBisonParser, "gen-glr-bison-parser", false, "Generate a GLR bison parser for the definition's programs")
	if err := kompileCmd.MarkFlagRequired("output-definition"); err != nil {
		panic(err)
	}
}
