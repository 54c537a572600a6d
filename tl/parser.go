/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tl

import (
	"strconv"
	"strings"
)

// ParseError pairs a source line with the error its parse produced, for
// batch-compile reporting (the parser continues past a bad definition; see
// ParseDefinitions).
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return "tl: line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func isSeparator(line string) (Category, bool) {
	t := strings.ToLower(strings.TrimSpace(line))
	t = strings.Trim(t, "-")
	switch t {
	case "functions":
		return CategoryFunctions, true
	case "types":
		return CategoryTypes, true
	default:
		return 0, false
	}
}

func isComment(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//")
}

// ParseDefinitions lexes a multi-line TL source fragment into a sequence of
// Definitions in source order. A line beginning a run of dashes around
// "functions" or "types" (e.g. "---functions---") switches the category
// applied to subsequent definitions, starting from initial. Blank lines and
// "//" comments are skipped. Each remaining line is parsed independently:
// a bad line is reported in errs and parsing continues with the next line,
// per the propagation policy that a batch compile aborts only the offending
// definition.
func ParseDefinitions(src string, initial Category) (defs []Definition, errs []*ParseError) {
	cat := initial
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		if next, ok := isSeparator(trimmed); ok {
			cat = next
			continue
		}
		def, err := ParseDefinition(line, cat)
		if err != nil {
			errs = append(errs, &ParseError{Line: i + 1, Text: line, Err: err})
			continue
		}
		defs = append(defs, def)
	}
	return
}

// ParseDefinition parses a single TL definition line, assigning it to cat.
// It accepts `name[#hexid] {param} = Type`, where each param is one of
// `name:type`, `name:!generic`, `name:flag.bit?type`, `name:#` or
// `{name:Type}`; error kinds are documented on the sentinel/typed errors in
// errors.go.
func ParseDefinition(line string, cat Category) (Definition, error) {
	if strings.TrimSpace(line) == "" {
		return Definition{}, ErrEmptyDefinition
	}

	eq := strings.Index(line, "=")
	if eq < 0 {
		return Definition{}, ErrMissingType
	}
	left := strings.TrimSpace(line[:eq])
	tyText := strings.TrimSpace(line[eq+1:])
	if tyText == "" {
		return Definition{}, ErrMissingType
	}
	ty, err := parseType(tyText)
	if err != nil {
		return Definition{}, ErrMissingType
	}

	var name, middle string
	if sp := strings.IndexAny(left, " \t"); sp >= 0 {
		name = left[:sp]
		middle = strings.TrimSpace(left[sp:])
	} else {
		name = left
	}

	var idText string
	var hasHash bool
	if h := strings.IndexByte(name, '#'); h >= 0 {
		hasHash = true
		idText = name[h+1:]
		name = name[:h]
	}

	if name == "" {
		return Definition{}, ErrMissingName
	}

	var id uint32
	if hasHash {
		v, perr := strconv.ParseUint(idText, 16, 32)
		if perr != nil {
			return Definition{}, &MalformedIDError{Cause: perr}
		}
		id = uint32(v)
	} else {
		id = InferID(line)
	}

	params, typeDefNames, err := parseParams(middle, line)
	if err != nil {
		return Definition{}, err
	}

	for _, td := range typeDefNames {
		if td == ty.Name {
			ty.GenericRef = true
			break
		}
	}

	return Definition{
		Name:     name,
		ID:       id,
		Params:   params,
		Type:     ty,
		Category: cat,
	}, nil
}

// parseParams parses the whitespace-separated parameter list of a
// definition's left-hand side, returning the ordered Parameters (TypeDef
// entries excluded, per spec) and the list of generic names introduced by
// TypeDef entries, in declaration order.
func parseParams(middle, fullLine string) (params []Parameter, typeDefNames []string, err error) {
	for _, tok := range strings.Fields(middle) {
		if tok == "?" {
			return nil, nil, &NotImplementedError{Line: strings.TrimSpace(fullLine)}
		}
		if strings.HasPrefix(tok, "{") {
			p, perr := parseTypeDef(tok)
			if perr != nil {
				return nil, nil, perr
			}
			typeDefNames = append(typeDefNames, p.Name)
			continue
		}

		p, perr := parseParam(tok)
		if perr != nil {
			return nil, nil, perr
		}
		if p.Kind == ParamNormal && p.Type.GenericRef {
			found := false
			for _, td := range typeDefNames {
				if td == p.Type.Name {
					found = true
					break
				}
			}
			if !found {
				return nil, nil, ErrMalformedParam
			}
		}
		params = append(params, p)
	}
	return
}

func parseTypeDef(tok string) (Parameter, error) {
	if !strings.HasPrefix(tok, "{") || !strings.HasSuffix(tok, "}") {
		return Parameter{}, ErrMalformedParam
	}
	inner := tok[1 : len(tok)-1]
	parts := strings.SplitN(inner, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] != "Type" {
		return Parameter{}, ErrMalformedParam
	}
	return Parameter{Kind: ParamTypeDef, Name: parts[0]}, nil
}

// parseParam parses one "name:type" token, including the Flags ("#"),
// generic-ref ("!name"), and conditional ("flag.bit?type") variants.
func parseParam(tok string) (Parameter, error) {
	idx := strings.Index(tok, ":")
	if idx < 0 {
		return Parameter{}, ErrMalformedParam
	}
	name := tok[:idx]
	rest := tok[idx+1:]
	if name == "" || rest == "" {
		return Parameter{}, ErrMalformedParam
	}

	if rest == "#" {
		return Parameter{Kind: ParamFlags, Name: name}, nil
	}

	if strings.HasPrefix(rest, "!") {
		generic := rest[1:]
		if generic == "" {
			return Parameter{}, ErrMalformedParam
		}
		return Parameter{
			Kind: ParamNormal,
			Name: name,
			Type: Type{Name: generic, GenericRef: true},
		}, nil
	}

	if q := strings.Index(rest, "?"); q >= 0 {
		flagPart := rest[:q]
		typePart := rest[q+1:]
		dot := strings.Index(flagPart, ".")
		if dot < 0 || typePart == "" {
			return Parameter{}, ErrMalformedParam
		}
		flagField := flagPart[:dot]
		bit, err := strconv.Atoi(flagPart[dot+1:])
		if flagField == "" || err != nil {
			return Parameter{}, ErrMalformedParam
		}
		var ty Type
		if strings.HasPrefix(typePart, "!") {
			ty = Type{Name: typePart[1:], GenericRef: true}
		} else {
			ty, err = parseType(typePart)
			if err != nil {
				return Parameter{}, ErrMalformedParam
			}
		}
		return Parameter{
			Kind:      ParamNormal,
			Name:      name,
			Type:      ty,
			HasFlag:   true,
			FlagField: flagField,
			FlagBit:   bit,
		}, nil
	}

	ty, err := parseType(rest)
	if err != nil {
		return Parameter{}, ErrMalformedParam
	}
	return Parameter{Kind: ParamNormal, Name: name, Type: ty}, nil
}

// parseType parses a possibly-namespaced, possibly-generic type reference
// such as "Vector<Int>" or "auth.SentCode". It never sets GenericRef; that
// is the caller's responsibility (either a "!name" prefix, or a later pass
// matching a definition's return type against its TypeDef scope).
func parseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, ErrMissingType
	}

	var arg *string
	if lt := strings.IndexByte(s, '<'); lt >= 0 {
		if !strings.HasSuffix(s, ">") {
			return Type{}, ErrMalformedParam
		}
		a := s[lt+1 : len(s)-1]
		arg = &a
		s = s[:lt]
	}

	parts := strings.Split(s, ".")
	name := parts[len(parts)-1]
	var ns []string
	if len(parts) > 1 {
		ns = parts[:len(parts)-1]
	}
	if name == "" {
		return Type{}, ErrMissingType
	}
	return Type{Namespace: ns, Name: name, GenericArg: arg}, nil
}
