// Package extract implements the best-effort text heuristics that pull order
// items and client details out of a conversation. Nothing in this package
// returns an error: a missed match is an empty result.
package extract

import (
	"regexp"
	"strconv"
)

var numwordsES = map[string]int{
	"uno": 1, "una": 1, "dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
	"seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
}

var numwordsEN = map[string]int{
	"one": 1, "a": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// tokenPattern tokenizes on word characters including accented Latin letters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokens splits text into word tokens.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// numbersInText maps every numeric token in text (digits or language-specific
// number words) to its integer value.
func numbersInText(text, lang string) map[string]int {
	words := numwordsES
	if lang == "en" {
		words = numwordsEN
	}
	out := map[string]int{}
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if n, err := strconv.Atoi(tok); err == nil {
			out[tok] = n
		} else if n, ok := words[tok]; ok {
			out[tok] = n
		}
	}
	return out
}
