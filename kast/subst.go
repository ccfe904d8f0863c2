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

package kast

// Subst is a partial mapping from variable names to terms.
type Subst map[string]KInner

// Compose merges s with other into a new Subst. Bindings in other win on
// name collisions, so composing default, record-derived and caller-supplied
// substitutions in that order gives the caller the final word.
func (s Subst) Compose(other Subst) Subst {
	out := make(Subst, len(s)+len(other))
	for name, term := range s {
		out[name] = term
	}
	for name, term := range other {
		out[name] = term
	}
	return out
}

// Apply substitutes every bound variable in term, returning a new term.
// Unbound variables are left in place.
func (s Subst) Apply(term KInner) KInner {
	switch t := term.(type) {
	case KVariable:
		if bound, ok := s[t.Name]; ok {
			return bound
		}
		return t
	case KApply:
		args := make([]KInner, len(t.Args))
		for i, arg := range t.Args {
			args[i] = s.Apply(arg)
		}
		return KApply{Label: t.Label, Args: args}
	default:
		return term
	}
}
