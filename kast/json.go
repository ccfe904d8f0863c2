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
	"reflect"

	"github.com/algorand/go-codec/codec"
)

// The wire form is the KAST JSON interchange format emitted by the K
// frontend with --emit-json: a {format, version, term} wrapper around nodes
// tagged KApply, KToken or KVariable.

const jsonFormat = "KAST"
const jsonVersion = 2

var jsonHandle *codec.JsonHandle

func init() {
	jsonHandle = new(codec.JsonHandle)
	jsonHandle.MapType = reflect.TypeOf(map[string]interface{}(nil))
	jsonHandle.HTMLCharsAsIs = true
}

// ToJSON encodes a term in the KAST JSON interchange format.
func ToJSON(term KInner) []byte {
	wrapper := map[string]interface{}{
		"format":  jsonFormat,
		"version": jsonVersion,
		"term":    termToJSON(term),
	}
	var buf []byte
	codec.NewEncoderBytes(&buf, jsonHandle).MustEncode(wrapper)
	return buf
}

func termToJSON(term KInner) map[string]interface{} {
	switch t := term.(type) {
	case KApply:
		args := make([]interface{}, len(t.Args))
		for i, arg := range t.Args {
			args[i] = termToJSON(arg)
		}
		return map[string]interface{}{
			"node":  "KApply",
			"label": map[string]interface{}{"node": "KLabel", "name": string(t.Label)},
			"arity": len(t.Args),
			"args":  args,
		}
	case KToken:
		return map[string]interface{}{
			"node":  "KToken",
			"token": t.Token,
			"sort":  map[string]interface{}{"node": "KSort", "name": string(t.Sort)},
		}
	case KVariable:
		return map[string]interface{}{"node": "KVariable", "name": t.Name}
	}
	return nil
}

// FromJSON decodes a term from the KAST JSON interchange format. Both the
// {format, version, term} wrapper and a bare node are accepted.
func FromJSON(data []byte) (KInner, error) {
	var raw map[string]interface{}
	if err := codec.NewDecoderBytes(data, jsonHandle).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot decode KAST JSON: %w", err)
	}
	if inner, ok := raw["term"].(map[string]interface{}); ok {
		raw = inner
	}
	return termFromJSON(raw)
}

func termFromJSON(raw map[string]interface{}) (KInner, error) {
	switch raw["node"] {
	case "KApply":
		label, ok := raw["label"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("KApply node lacks a label")
		}
		name, _ := label["name"].(string)
		rawArgs, _ := raw["args"].([]interface{})
		args := make([]KInner, len(rawArgs))
		for i, rawArg := range rawArgs {
			argMap, ok := rawArg.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("KApply argument %d is not a node", i)
			}
			arg, err := termFromJSON(argMap)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return KApply{Label: KLabel(name), Args: args}, nil
	case "KToken":
		token, _ := raw["token"].(string)
		sort := ""
		if sortMap, ok := raw["sort"].(map[string]interface{}); ok {
			sort, _ = sortMap["name"].(string)
		} else if s, ok := raw["sort"].(string); ok {
			sort = s
		}
		return KToken{Token: token, Sort: KSort(sort)}, nil
	case "KVariable":
		name, _ := raw["name"].(string)
		return KVariable{Name: name}, nil
	}
	return nil, fmt.Errorf("unexpected KAST node %v", raw["node"])
}
