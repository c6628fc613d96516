package command

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		text string
		want int64
		ok   bool
	}{
		{"five thousand five hundred", 5500, true},
		{"two hundred", 200, true},
		{"ten", 10, true},
		{"five", 5, true},
		{"twenty thousand", 20000, true},
		{"one hundred thousand", 100000, true},
		{"two million", 2000000, true},
		{"one thousand and fifty", 1050, true},
		{"give me seventy five", 75, true},
		{"thousand", 0, false},
		{"hundred million", 0, false},
		{"please and thank you", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := ParseAmount(c.text)
		if ok != c.ok {
			t.Fatalf("ParseAmount(%q) ok = %v, want %v", c.text, ok, c.ok)
		}
		if got != c.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}
