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

// Package util holds process-spawning helpers shared by the toolchain
// driver and the TEAL parser binding.
package util

import (
	"bytes"
	"os"
	"os/exec"
)

// ExecAndCaptureOutput runs the specified command and args and captures
// stdout and stderr into strings, returning them and any run error.
func ExecAndCaptureOutput(command string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	subcmd := exec.Command(command, args...)
	subcmd.Stdout = &stdout
	subcmd.Stderr = &stderr
	err := subcmd.Run()
	return stdout.String(), stderr.String(), err
}

// ExecPassthrough runs the specified command with stdout and stderr attached
// to the calling process, returning any run error.
func ExecPassthrough(command string, args ...string) error {
	subcmd := exec.Command(command, args...)
	subcmd.Stdout = os.Stdout
	subcmd.Stderr = os.Stderr
	return subcmd.Run()
}
