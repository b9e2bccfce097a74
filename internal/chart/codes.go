package chart

import (
	"strconv"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// GenerateCode returns the lowest unused code in the type's reserved band,
// preferring multiples of ten (1000, 1010, ...) before falling back to every
// integer in the band. When the band is exhausted it returns band end + 1.
// Pure function of its inputs; never returns a member of existing.
func GenerateCode(typ ledger.AccountType, existing []string) string {
	band := typ.Band()
	taken := make(map[int]struct{}, len(existing))
	for _, c := range existing {
		if n, err := strconv.Atoi(c); err == nil {
			taken[n] = struct{}{}
		}
	}
	for c := band.Start; c <= band.End; c += 10 {
		if _, ok := taken[c]; !ok {
			return strconv.Itoa(c)
		}
	}
	for c := band.Start; c <= band.End; c++ {
		if _, ok := taken[c]; !ok {
			return strconv.Itoa(c)
		}
	}
	return strconv.Itoa(band.End + 1)
}

// isDigits reports whether s is non-empty and consists of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
