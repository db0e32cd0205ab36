package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const serialPrefixLen = 3

// SerialPrefix derives the serial prefix for a component name: the
// first three characters uppercased, internal whitespace removed,
// right-padded with 'X' when fewer than three remain.
//
//	"Arduino"      -> "ARD"
//	"Raspberry Pi" -> "RAS"
//	"Pi"           -> "PIX"
func SerialPrefix(name string) string {
	runes := []rune(strings.ToUpper(name))
	if len(runes) > serialPrefixLen {
		runes = runes[:serialPrefixLen]
	}
	prefix := strings.ReplaceAll(string(runes), " ", "")
	for len(prefix) < serialPrefixLen {
		prefix += "X"
	}
	return prefix
}

// NextSerials generates n sequential serial numbers continuing after
// the highest numeric suffix found in existing. Serials in existing
// that do not start with prefix, or whose suffix does not parse, are
// ignored. Suffixes are zero-padded to three digits; larger values
// keep their full width, nothing is truncated.
//
// The caller scopes existing to a single inventory category; two
// categories that happen to share a prefix are never reconciled
// against each other.
func NextSerials(prefix string, existing []string, n int) []string {
	maxNum := 0
	for _, serial := range existing {
		if !strings.HasPrefix(serial, prefix) {
			continue
		}
		num, err := strconv.Atoi(serial[len(prefix):])
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}

	serials := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		serials = append(serials, fmt.Sprintf("%s%03d", prefix, maxNum+i))
	}
	return serials
}
