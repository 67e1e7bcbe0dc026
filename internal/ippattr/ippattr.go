// Package ippattr is the Attribute Model component: typed helpers for
// building and reading goipp attributes, and for interpreting a client's
// requested-attributes set. Nothing here knows about printers or jobs —
// it is pure wire-level plumbing reused by the projector, validator, and
// dispatcher.
package ippattr

import (
	"strings"

	goipp "github.com/OpenPrinting/goipp"
)

// Keywords builds a keyword-tagged attribute from one or more strings.
func Keywords(name string, values ...string) goipp.Attribute {
	return stringsAttr(name, goipp.TagKeyword, values)
}

// Names builds a name-tagged attribute.
func Names(name string, values ...string) goipp.Attribute {
	return stringsAttr(name, goipp.TagName, values)
}

// Texts builds a text-tagged attribute.
func Texts(name string, values ...string) goipp.Attribute {
	return stringsAttr(name, goipp.TagText, values)
}

// URIs builds a uri-tagged attribute.
func URIs(name string, values ...string) goipp.Attribute {
	return stringsAttr(name, goipp.TagURI, values)
}

// OctetStrings builds an octetString-tagged attribute.
func OctetStrings(name string, values ...string) goipp.Attribute {
	return stringsAttr(name, goipp.TagString, values)
}

func stringsAttr(name string, tag goipp.Tag, values []string) goipp.Attribute {
	vals := make([]goipp.Value, len(values))
	for i, v := range values {
		vals[i] = goipp.String(v)
	}
	if len(vals) == 0 {
		vals = []goipp.Value{goipp.String("")}
	}
	return goipp.MakeAttr(name, tag, vals[0], vals[1:]...)
}

// Ints builds an integer-tagged attribute.
func Ints(name string, values ...int) goipp.Attribute {
	vals := make([]goipp.Value, len(values))
	for i, v := range values {
		vals[i] = goipp.Integer(v)
	}
	if len(vals) == 0 {
		vals = []goipp.Value{goipp.Integer(0)}
	}
	return goipp.MakeAttr(name, goipp.TagInteger, vals[0], vals[1:]...)
}

// Enums builds an enum-tagged attribute.
func Enums(name string, values ...int) goipp.Attribute {
	vals := make([]goipp.Value, len(values))
	for i, v := range values {
		vals[i] = goipp.Integer(v)
	}
	if len(vals) == 0 {
		vals = []goipp.Value{goipp.Integer(0)}
	}
	return goipp.MakeAttr(name, goipp.TagEnum, vals[0], vals[1:]...)
}

// Bool builds a single boolean attribute.
func Bool(name string, v bool) goipp.Attribute {
	return goipp.MakeAttribute(name, goipp.TagBoolean, goipp.Boolean(v))
}

// IntRange builds a single rangeOfInteger attribute.
func IntRange(name string, lower, upper int) goipp.Attribute {
	return goipp.MakeAttribute(name, goipp.TagRange, goipp.Range{Lower: lower, Upper: upper})
}

// Resolutions builds a resolution-tagged attribute.
func Resolutions(name string, values ...goipp.Resolution) goipp.Attribute {
	vals := make([]goipp.Value, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if len(vals) == 0 {
		vals = []goipp.Value{goipp.Resolution{Xres: 300, Yres: 300, Units: goipp.UnitsDpi}}
	}
	return goipp.MakeAttr(name, goipp.TagResolution, vals[0], vals[1:]...)
}

// NoValue builds an unsettable/no-value placeholder attribute.
func NoValue(name string) goipp.Attribute {
	return goipp.MakeAttribute(name, goipp.TagNoValue, goipp.Void{})
}

// String returns the first value of attrs[name] as a string, or "".
func String(attrs goipp.Attributes, name string) string {
	for _, a := range attrs {
		if a.Name == name && len(a.Values) > 0 {
			return a.Values[0].V.String()
		}
	}
	return ""
}

// Strings returns every value of attrs[name] as strings.
func Strings(attrs goipp.Attributes, name string) []string {
	for _, a := range attrs {
		if a.Name == name {
			out := make([]string, len(a.Values))
			for i, v := range a.Values {
				out[i] = v.V.String()
			}
			return out
		}
	}
	return nil
}

// Find returns the attribute named `name`, if present.
func Find(attrs goipp.Attributes, name string) (goipp.Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return goipp.Attribute{}, false
}

// Int returns the first value of attrs[name] as an int, with ok=false if
// absent or not an integer/enum value.
func Int(attrs goipp.Attributes, name string) (int, bool) {
	a, ok := Find(attrs, name)
	if !ok || len(a.Values) == 0 {
		return 0, false
	}
	switch v := a.Values[0].V.(type) {
	case goipp.Integer:
		return int(v), true
	}
	return 0, false
}

// BoolOf returns the first value of attrs[name] as a bool.
func BoolOf(attrs goipp.Attributes, name string) (bool, bool) {
	a, ok := Find(attrs, name)
	if !ok || len(a.Values) == 0 {
		return false, false
	}
	if v, ok := a.Values[0].V.(goipp.Boolean); ok {
		return bool(v), true
	}
	return false, false
}

// RequestedAttributes parses a request's "requested-attributes" operation
// attribute. It returns (nil, true) when the client omitted the attribute
// or supplied "all" or "printer-description" — both meaning "project
// everything", since this core only ever emits the printer-description
// group (see §4.3) — and (set, false) with a lower-cased name set
// otherwise. Any other group name is kept as a literal attribute name.
func RequestedAttributes(req *goipp.Message) (set map[string]bool, all bool) {
	if req == nil {
		return nil, true
	}
	values := Strings(req.Operation, "requested-attributes")
	if len(values) == 0 {
		return nil, true
	}
	out := map[string]bool{}
	for _, v := range values {
		name := strings.ToLower(strings.TrimSpace(v))
		if name == "" {
			continue
		}
		if name == "all" || name == "printer-description" {
			return nil, true
		}
		out[name] = true
	}
	if len(out) == 0 {
		return nil, true
	}
	return out, false
}

// Wanted reports whether an attribute named `name` should be emitted
// given a requested-attributes set (nil set means "all").
func Wanted(requested map[string]bool, all bool, name string) bool {
	if all {
		return true
	}
	return requested[strings.ToLower(name)]
}

// RequestingUserName returns the requesting-user-name operation attribute,
// falling back to the client envelope's authenticated username.
func RequestingUserName(req *goipp.Message, authUser string) string {
	if name := String(req.Operation, "requesting-user-name"); name != "" {
		return name
	}
	return authUser
}
