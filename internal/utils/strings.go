package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/ui"
)

var trailingNumber = regexp.MustCompile(`^(.*?)(\d+)$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// NextName returns prefix followed by one more than the highest number any
// existing name carries after prefix, or prefix+"0" when none does.
func NextName(prefix string, existing []string) string {
	n := highestSuffix(prefix, existing) + 1
	return prefix + strconv.Itoa(n)
}

// IncrementName bumps the trailing number of name ("main4" becomes "main5"),
// skipping past any number already taken by existing names.
func IncrementName(name string, existing []string) string {
	m := trailingNumber.FindStringSubmatch(name)
	if m == nil {
		return NextName(name, existing)
	}
	base := m[1]
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return NextName(base, existing)
	}
	next := n + 1
	if taken := highestSuffix(base, existing) + 1; taken > next {
		next = taken
	}
	return base + strconv.Itoa(next)
}

// highestSuffix returns -1 when no existing name is prefix plus digits.
func highestSuffix(prefix string, existing []string) int {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)
	highest := -1
	for _, name := range existing {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
