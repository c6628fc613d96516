package atm

import "strconv"

// FormatAmount renders an amount in Naira with thousands separators. The sign
// is dropped; callers add direction themselves where it matters.
func FormatAmount(n int64) string {
	if n < 0 {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
