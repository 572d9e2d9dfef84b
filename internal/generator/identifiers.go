// Package generator synthesizes identifiers, batch numbers, weights and sexes for migrations
package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/porcinet/herdbook/internal/domain"
)

var placeholderPattern = regexp.MustCompile(`\{(building|batch|year|seq)(?::(\d+))?\}`)

// expand replaces every placeholder of pattern. Unknown placeholders are left as they are.
func expand(pattern string, values map[string]string, seq int) string {
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		name, width := parts[1], parts[2]
		if name == "seq" {
			if width == "" {
				return strconv.Itoa(seq)
			}
			w, err := strconv.Atoi(width)
			if err != nil {
				return match
			}
			return fmt.Sprintf("%0*d", w, seq)
		}
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}

// Building returns the building segment of a pen name, the part before the first '-'
func Building(penName string) string {
	building, _, _ := strings.Cut(penName, "-")
	if building == "" {
		return domain.DEFAULT_BUILDING
	}
	return building
}

// Identifiers expands pattern for sequence numbers 1..n.
// Supported placeholders: {building}, {batch}, {year}, {seq} and {seq:N} (zero padded to N digits).
func Identifiers(pattern, penName string, year, n int) []string {
	if pattern == "" {
		pattern = domain.DEFAULT_IDENTIFIER_PATTERN
	}
	values := map[string]string{
		"building": Building(penName),
		"batch":    penName,
		"year":     strconv.Itoa(year),
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, expand(pattern, values, i))
	}
	return out
}

// FallbackIdentifier is the code used when no generated or supplied identifier exists for slot i (0-based)
func FallbackIdentifier(penName string, i int) string {
	return fmt.Sprintf("%s-%d", penName, i+1)
}

// BatchNumber expands a batch number pattern for one sequence number.
// Supported placeholders: {year}, {seq} and {seq:N}.
func BatchNumber(pattern string, year, seq int) string {
	if pattern == "" {
		pattern = domain.DEFAULT_BATCH_NUMBER_PATTERN
	}
	return expand(pattern, map[string]string{"year": strconv.Itoa(year)}, seq)
}
