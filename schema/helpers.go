package schema

import (
	"strings"
	"unicode"
)

// cleanParts trims non-name punctuation from each part and drops empty parts.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Sarah Chen" to "Sarah C" for narrow tables.
// Single-word names are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.Trim(strings.TrimSpace(name), "()\"'`")
	cleaned := cleanParts(strings.Fields(trimmed))

	switch {
	case len(cleaned) >= 2:
		first := cleaned[0]
		last := []rune(cleaned[len(cleaned)-1])
		return first + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmed
	}
}

// FormatDrivers joins the top risk drivers of an employee for display.
func FormatDrivers(drivers []string) string {
	return strings.Join(drivers, ", ")
}

// MatchesSearch reports whether an employee's name or ID contains the query,
// ignoring case. An empty query matches everyone.
func MatchesSearch(e Employee, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.ID), q)
}

// MatchesDepartment reports whether an employee belongs to the department.
// "all" and the empty string match everyone.
func MatchesDepartment(e Employee, department string) bool {
	if department == "" || strings.EqualFold(department, "all") {
		return true
	}
	return e.Department == department
}
