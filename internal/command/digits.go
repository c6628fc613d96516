package command

import "regexp"

var (
	digitWordRe    = regexp.MustCompile(`\b(zero|one|two|three|four|five|six|seven|eight|nine)\b`)
	digitLiteralRe = regexp.MustCompile(`\b(\d)\b`)
)

var digitWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// ExtractDigits pulls an ordered sequence of single digits out of text for
// PIN entry. Spelled-out digit words are tried first; only if none occur does
// it fall back to literal single-digit characters. Returns nil when the text
// contains neither.
func ExtractDigits(text string) []int {
	if words := digitWordRe.FindAllString(text, -1); len(words) > 0 {
		out := make([]int, 0, len(words))
		for _, w := range words {
			out = append(out, digitWords[w])
		}
		return out
	}
	if literals := digitLiteralRe.FindAllString(text, -1); len(literals) > 0 {
		out := make([]int, 0, len(literals))
		for _, l := range literals {
			out = append(out, int(l[0]-'0'))
		}
		return out
	}
	return nil
}
