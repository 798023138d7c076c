package utils

import (
	"strings"
	"testing"
)

func TestRandomSuffix(t *testing.T) {
	for _, n := range []int{1, 6, 12} {
		s := RandomSuffix(n)
		if len(s) != n {
			t.Errorf("RandomSuffix(%d) has length %d", n, len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(suffixCharset, r) {
				t.Errorf("RandomSuffix(%d) contains %q outside the charset", n, r)
			}
		}
	}
}
