package command

import "strings"

// numberWords maps spoken number words to their values, by units and tens.
var numberWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
	"forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
}

// ParseAmount parses a spoken monetary amount like "five thousand five
// hundred". Number words accumulate, scale words multiply the accumulator;
// "thousand" and "million" also flush it into the running total. A scale word
// with nothing accumulated is a no-op, and unknown tokens are skipped, so
// "thousand" alone parses to nothing. Returns false when no amount was found.
func ParseAmount(text string) (int64, bool) {
	var total, acc int64
	for _, word := range strings.Fields(text) {
		switch {
		case word == "and":
			// filler
		case word == "hundred" && acc != 0:
			acc *= 100
		case word == "thousand" && acc != 0:
			acc *= 1000
			total += acc
			acc = 0
		case word == "million" && acc != 0:
			acc *= 1_000_000
			total += acc
			acc = 0
		default:
			if v, ok := numberWords[word]; ok {
				acc += v
			}
		}
	}
	total += acc
	if total == 0 {
		return 0, false
	}
	return total, true
}
