// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"strings"

	"github.com/tigerwill90/trie/internal/iterutil"
)

const (
	slashDelim   byte = '/'
	colonDelim   byte = ':'
	bracketDelim byte = '{'
	closeDelim   byte = '}'
)

const (
	anything = "*"
	catchall = "**"
)

// Kind identifies which of the five match kinds a [PathComponent] describes.
type Kind uint8

const (
	// KindConstant matches one segment exactly.
	KindConstant Kind = iota
	// KindParameter matches one segment and binds it to a name.
	KindParameter
	// KindAnything matches one segment and discards it.
	KindAnything
	// KindCatchall matches one or more trailing segments. It must be the last component of a route.
	KindCatchall
	// KindPartial matches one segment against a template of literals interleaved with named captures.
	KindPartial
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	case KindAnything:
		return "anything"
	case KindCatchall:
		return "catchall"
	case KindPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// PathComponent describes a single segment of a route pattern. PathComponent is a value type and is
// safe to copy. Use [Constant], [Parameter], [Anything], [Catchall], [Partial] or [ParseComponent] to
// build one.
type PathComponent struct {
	// Value holds the literal text for a constant, the name for a parameter and
	// the raw template for a partial. It is empty otherwise.
	Value string
	// Literals holds the literal fragments of a partial template. There is always
	// one more literal than captures, possibly empty at both ends.
	Literals []string
	// Captures holds the capture names of a partial template, in order.
	Captures []string
	Kind     Kind
}

// Constant returns a component matching exactly text.
func Constant(text string) PathComponent {
	return PathComponent{Kind: KindConstant, Value: text}
}

// Parameter returns a component binding one segment to name.
func Parameter(name string) PathComponent {
	return PathComponent{Kind: KindParameter, Value: name}
}

// Anything returns a component matching any single segment without binding it.
func Anything() PathComponent {
	return PathComponent{Kind: KindAnything}
}

// Catchall returns a component matching one or more trailing segments.
func Catchall() PathComponent {
	return PathComponent{Kind: KindCatchall}
}

// Partial parses template as a partial template (e.g. "file-{id}.json"). If template contains no
// valid "{name}" placeholder, a [Constant] is returned instead.
func Partial(template string) PathComponent {
	literals, captures, ok := parseTemplate(template)
	if !ok {
		return Constant(template)
	}
	return PathComponent{
		Kind:     KindPartial,
		Value:    template,
		Literals: literals,
		Captures: captures,
	}
}

// ParseComponent parses a single route pattern segment:
//   - a segment containing "{name}" placeholders is a partial template,
//   - ":name" is a parameter,
//   - "*" matches anything,
//   - "**" is a catchall,
//   - anything else is a constant.
//
// Unbalanced or empty braces are kept as literal text. ParseComponent never fails.
func ParseComponent(pattern string) PathComponent {
	if strings.IndexByte(pattern, bracketDelim) >= 0 {
		return Partial(pattern)
	}
	if len(pattern) > 0 && pattern[0] == colonDelim {
		return Parameter(pattern[1:])
	}
	switch pattern {
	case anything:
		return Anything()
	case catchall:
		return Catchall()
	}
	return Constant(pattern)
}

// ParsePattern splits a route pattern such as "/users/:id/**" on '/' and parses every non-empty
// part with [ParseComponent].
func ParsePattern(pattern string) []PathComponent {
	components := make([]PathComponent, 0, strings.Count(pattern, string(slashDelim))+1)
	for part := range iterutil.SplitStringSeq(pattern, string(slashDelim)) {
		if part == "" {
			continue
		}
		components = append(components, ParseComponent(part))
	}
	return components
}

// Join renders components back in their pattern form, each prefixed with '/'.
func Join(components []PathComponent) string {
	if len(components) == 0 {
		return string(slashDelim)
	}
	var sb strings.Builder
	for _, c := range components {
		sb.WriteByte(slashDelim)
		sb.WriteString(c.String())
	}
	return sb.String()
}

// String returns the component in the pattern mini-language.
func (c PathComponent) String() string {
	switch c.Kind {
	case KindParameter:
		return string(colonDelim) + c.Value
	case KindAnything:
		return anything
	case KindCatchall:
		return catchall
	default:
		return c.Value
	}
}

// parseTemplate splits template into literals and captures. It reports false if no valid
// placeholder was found, in which case the template is a plain literal.
//
// Examples:
//
//	file-{id}.json     → ["file-", ".json"], ["id"]
//	{name}.{ext}       → ["", ".", ""], ["name", "ext"]
//	a{}b               → not a template
//	{x{y}z             → ["{x", "z"], ["y"]
func parseTemplate(template string) (literals, captures []string, ok bool) {
	var lit strings.Builder
	i := 0
	for i < len(template) {
		if template[i] != bracketDelim {
			lit.WriteByte(template[i])
			i++
			continue
		}

		end := strings.IndexByte(template[i+1:], closeDelim)
		if end < 0 {
			// No closing brace, the remainder is literal.
			lit.WriteString(template[i:])
			break
		}

		name := template[i+1 : i+1+end]
		if name == "" || strings.IndexByte(name, bracketDelim) >= 0 {
			lit.WriteByte(template[i])
			i++
			continue
		}

		literals = append(literals, lit.String())
		lit.Reset()
		captures = append(captures, name)
		i += end + 2
	}

	if len(captures) == 0 {
		return nil, nil, false
	}

	literals = append(literals, lit.String())
	return literals, captures, true
}
