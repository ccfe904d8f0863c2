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

import (
	"fmt"
	"sort"
	"strings"
)

// Cell wraps content in a configuration cell named `<name>`.
func Cell(name string, content KInner) KApply {
	return Apply(KLabel("<"+name+">"), content)
}

// IsCellLabel reports whether label names a configuration cell.
func IsCellLabel(label KLabel) bool {
	return len(label) > 2 && strings.HasPrefix(string(label), "<") && strings.HasSuffix(string(label), ">")
}

// CellVariable returns the canonical variable name for a cell label,
// e.g. `<minBalance>` becomes MINBALANCE_CELL.
func CellVariable(label KLabel) string {
	name := strings.TrimSuffix(strings.TrimPrefix(string(label), "<"), ">")
	return strings.ToUpper(name) + "_CELL"
}

// FreeVars returns the names of all variables occurring in term, in first
// occurrence order with duplicates removed.
func FreeVars(term KInner) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(KInner)
	walk = func(t KInner) {
		switch tt := t.(type) {
		case KVariable:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				names = append(names, tt.Name)
			}
		case KApply:
			for _, arg := range tt.Args {
				walk(arg)
			}
		}
	}
	walk(term)
	return names
}

// SplitConfig separates a configuration term into its symbolic shape and the
// substitution carrying the cell contents. Every cell whose children are not
// themselves cells has its content replaced with a variable named after the
// cell, and the content is recorded under that name. An error is returned
// when term is not a configuration-shaped application.
func SplitConfig(term KInner) (KInner, Subst, error) {
	top, ok := term.(KApply)
	if !ok || !IsCellLabel(top.Label) {
		return nil, nil, fmt.Errorf("term is not a configuration cell: %T", term)
	}
	subst := make(Subst)
	var split func(cell KApply) KInner
	split = func(cell KApply) KInner {
		allCells := len(cell.Args) > 0
		for _, arg := range cell.Args {
			child, isApply := arg.(KApply)
			if !isApply || !IsCellLabel(child.Label) {
				allCells = false
				break
			}
		}
		if allCells {
			args := make([]KInner, len(cell.Args))
			for i, arg := range cell.Args {
				args[i] = split(arg.(KApply))
			}
			return KApply{Label: cell.Label, Args: args}
		}
		name := CellVariable(cell.Label)
		if len(cell.Args) == 1 {
			subst[name] = cell.Args[0]
		} else {
			subst[name] = cell
		}
		return Apply(cell.Label, KVariable{Name: name})
	}
	return split(top), subst, nil
}

// BuildAssoc right-folds terms with an associative constructor label,
// returning unit for an empty list and the sole term for a singleton.
func BuildAssoc(unit KInner, label KLabel, terms []KInner) KInner {
	filtered := make([]KInner, 0, len(terms))
	for _, t := range terms {
		if !Equal(t, unit) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return unit
	}
	result := filtered[len(filtered)-1]
	for i := len(filtered) - 2; i >= 0; i-- {
		result = Apply(label, filtered[i], result)
	}
	return result
}

// MapUnit is the empty K Map.
func MapUnit() KInner {
	return Apply(".Map")
}

func mapItem(key, value KInner) KInner {
	return Apply("_|->_", key, value)
}

// MapBytesBytes renders a bytes-to-bytes mapping as a K Map term with
// deterministic (sorted) key order.
func MapBytesBytes(m map[string]string) KInner {
	items := make([]KInner, 0, len(m))
	for _, k := range sortedKeys(m) {
		items = append(items, mapItem(StringToken(k), StringToken(m[k])))
	}
	return BuildAssoc(MapUnit(), "_Map_", items)
}

// MapBytesInts renders a bytes-to-uint mapping as a K Map term with
// deterministic (sorted) key order.
func MapBytesInts(m map[string]uint64) KInner {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]KInner, 0, len(m))
	for _, k := range keys {
		items = append(items, mapItem(StringToken(k), IntToken(m[k])))
	}
	return BuildAssoc(MapUnit(), "_Map_", items)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
