// Package pwgmedia implements the PWG Media Registry external
// collaborator: a lookup from a PWG self-describing media-size-name
// keyword to its physical dimensions.
package pwgmedia

import "strings"

// Size is the registry's lookup result: a PWG media name and its
// dimensions in hundredths of a millimeter.
type Size struct {
	Name   string
	Width  int
	Length int
}

// table is intentionally a small, commonly-used subset of the full PWG
// media standard names (the complete registry runs to several hundred
// entries); it covers the sizes exercised by IPP Everywhere conformance
// testing and everyday printing.
var table = map[string]Size{
	"na_letter_8.5x11in":  {"na_letter_8.5x11in", 21590, 27940},
	"na_legal_8.5x14in":   {"na_legal_8.5x14in", 21590, 35560},
	"na_index-3x5_3x5in":  {"na_index-3x5_3x5in", 7600, 12700},
	"na_index-4x6_4x6in":  {"na_index-4x6_4x6in", 10160, 15240},
	"na_5x7_5x7in":        {"na_5x7_5x7in", 12700, 17780},
	"iso_a3_297x420mm":    {"iso_a3_297x420mm", 29700, 42000},
	"iso_a4_210x297mm":    {"iso_a4_210x297mm", 21000, 29700},
	"iso_a5_148x210mm":    {"iso_a5_148x210mm", 14800, 21000},
	"iso_a6_105x148mm":    {"iso_a6_105x148mm", 10500, 14800},
	"jis_b5_182x257mm":    {"jis_b5_182x257mm", 18200, 25700},
	"om_small-photo_3.5x5in": {"om_small-photo_3.5x5in", 8890, 12700},
	"na_number-10_4.125x9.5in": {"na_number-10_4.125x9.5in", 10477, 24130},
	"iso_dl_110x220mm":    {"iso_dl_110x220mm", 11000, 22000},
}

// Lookup resolves a PWG media-size-name to its dimensions. Matching is
// case-insensitive on the name but exact otherwise.
func Lookup(name string) (Size, bool) {
	s, ok := table[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// LookupByDimensions finds a registered name for the given width/length
// pair (checked both ways, since IPP media-size doesn't distinguish
// orientation). Returns "", false if no exact match exists.
func LookupByDimensions(width, length int) (string, bool) {
	for _, s := range table {
		if (s.Width == width && s.Length == length) || (s.Width == length && s.Length == width) {
			return s.Name, true
		}
	}
	return "", false
}
