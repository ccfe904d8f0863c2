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

// Package kast implements the subset of the K abstract syntax tree that the
// adaptor layer exchanges with the compiled AVM semantics: applications of
// labelled constructors, sorted tokens, and named variables, together with
// substitutions over them.
package kast

import (
	"strconv"
	"strings"
)

// KSort names a sort declared by the K definition.
type KSort string

// KLabel names a K production.
type KLabel string

// KInner is a node of a K term.
type KInner interface {
	kinner()
}

// KApply is the application of a labelled constructor to zero or more
// argument terms.
type KApply struct {
	Label KLabel
	Args  []KInner
}

// KToken is an uninterpreted token of a given sort.
type KToken struct {
	Token string
	Sort  KSort
}

// KVariable is a named placeholder, filled in by applying a Subst.
type KVariable struct {
	Name string
}

func (KApply) kinner()    {}
func (KToken) kinner()    {}
func (KVariable) kinner() {}

// Apply builds a KApply from a label and its arguments.
func Apply(label KLabel, args ...KInner) KApply {
	return KApply{Label: label, Args: args}
}

// IntToken returns an Int-sorted token.
func IntToken(v uint64) KToken {
	return KToken{Token: strconv.FormatUint(v, 10), Sort: "Int"}
}

// StringToken returns a String-sorted token carrying v in quotes.
func StringToken(v string) KToken {
	return KToken{Token: strconv.Quote(v), Sort: "String"}
}

// BoolToken returns a Bool-sorted token.
func BoolToken(v bool) KToken {
	return KToken{Token: strconv.FormatBool(v), Sort: "Bool"}
}

// Dequote strips one layer of surrounding double quotes from a token string.
// Tokens that are not quoted are returned unchanged.
func Dequote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
		return s[1 : len(s)-1]
	}
	return s
}

// Equal reports whether two terms are structurally identical.
func Equal(a, b KInner) bool {
	switch at := a.(type) {
	case KApply:
		bt, ok := b.(KApply)
		if !ok || at.Label != bt.Label || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case KToken:
		bt, ok := b.(KToken)
		return ok && at == bt
	case KVariable:
		bt, ok := b.(KVariable)
		return ok && at == bt
	}
	return false
}
