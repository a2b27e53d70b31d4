/*
Package utils contains all the helper functions for shardring.
*/
package utils

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/dgryski/go-farm"
)

// SelectInt takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectInt(opt, def int) int {
	if opt == 0 {
		return def
	}
	return opt
}

// SelectString takes an option and a default value and returns the default value if
// the option is equal to zero, and the option otherwise.
func SelectString(opt, def string) string {
	if opt == "" {
		return def
	}
	return opt
}

// Min returns min(a,b)
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// StrSliceContains will return whether slice contains the value
func StrSliceContains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// Difference will find the difference between two slices,
// and return items in slice1 not in slice2,
// and return items in slice2 not in slice1
func Difference(slice1 []string, slice2 []string) ([]string, []string) {
	var diff1 []string
	var diff2 []string

	// Loop two times, first to find slice1 strings not in slice2,
	// second loop to find slice2 strings not in slice1
	for i := 0; i < 2; i++ {
		for _, s1 := range slice1 {
			found := false
			for _, s2 := range slice2 {
				if s1 == s2 {
					found = true
					break
				}
			}
			// String not found. We add it to return slice
			if !found {
				if i == 0 {
					diff1 = append(diff1, s1)
				} else {
					diff2 = append(diff2, s1)
				}
			}
		}
		// Swap the slices, only if it was the first loop
		if i == 0 {
			slice1, slice2 = slice2, slice1
		}
	}

	return diff1, diff2
}

// ShuffleStringsInPlace uses the Fisher–Yates shuffle to randomize the strings
// in place.
func ShuffleStringsInPlace(strings []string) {
	for i := range strings {
		j := rand.Intn(i + 1)
		strings[i], strings[j] = strings[j], strings[i]
	}
}

// GetCheckSumFromNodes will Get the checkSum from nodes
func GetCheckSumFromNodes(nodes []string) uint32 {
	sort.Strings(nodes)
	bytes := []byte(strings.Join(nodes, ";"))
	return farm.Fingerprint32(bytes)
}
