// Package phonetic spells text using the NATO phonetic alphabet.
package phonetic

import "unicode"

// Entry is the phonetic reading of one character. Known is false for
// characters outside the alphabet, which callers render as a placeholder
// rather than dropping the character.
type Entry struct {
	Char  rune
	Word  string
	Known bool
}

var words = map[rune]string{
	'A': "Alfa",
	'B': "Bravo",
	'C': "Charlie",
	'D': "Delta",
	'E': "Echo",
	'F': "Foxtrot",
	'G': "Golf",
	'H': "Hotel",
	'I': "India",
	'J': "Juliett",
	'K': "Kilo",
	'L': "Lima",
	'M': "Mike",
	'N': "November",
	'O': "Oscar",
	'P': "Papa",
	'Q': "Quebec",
	'R': "Romeo",
	'S': "Sierra",
	'T': "Tango",
	'U': "Uniform",
	'V': "Victor",
	'W': "Whiskey",
	'X': "X-ray",
	'Y': "Yankee",
	'Z': "Zulu",
	'0': "Zero",
	'1': "One",
	'2': "Two",
	'3': "Three",
	'4': "Four",
	'5': "Five",
	'6': "Six",
	'7': "Seven",
	'8': "Eight",
	'9': "Nine",
}

// Lookup returns the phonetic word for c. Letters fold to upper case.
func Lookup(c rune) (string, bool) {
	w, ok := words[unicode.ToUpper(c)]
	return w, ok
}

// Spell returns one Entry per character of s, in input order.
func Spell(s string) []Entry {
	entries := make([]Entry, 0, len(s))
	for _, c := range s {
		w, ok := Lookup(c)
		entries = append(entries, Entry{Char: c, Word: w, Known: ok})
	}
	return entries
}
