package expression

import (
	"regexp"
	"strings"
)

// convertSyntax converts legacy expression syntax to expr-lang syntax
// This provides compatibility with existing expressions while using expr-lang internally
func convertSyntax(expression string) string {
	// Convert bare comparisons against the input value (">100",
	// ">100 && <200") into explicit "input > 100" form
	shorthandRe := regexp.MustCompile(`(^|&&|\|\|)\s*(>=|<=|==|!=|>|<)`)
	expression = shorthandRe.ReplaceAllString(expression, "$1 input $2")

	// Convert .length property to len() function, as a float64 number
	// Match: somevar.field.length or item.array.length
	lengthRe := regexp.MustCompile(`(\w+(?:\.\w+|\[\d+\])*?)\.length\b`)
	expression = lengthRe.ReplaceAllString(expression, "float(len($1))")

	// Convert map(array, expr) syntax to map(array, {closure})
	// This is more complex as we need to handle nested expressions
	expression = convertMapSyntax(expression)

	return expression
}

// convertMapSyntax converts map() function calls from legacy syntax to expr-lang syntax
// legacy: map(users, item.age * 2)
// expr-lang: map(users, {#.age * 2})
func convertMapSyntax(expression string) string {
	// Find map() calls
	mapRe := regexp.MustCompile(`map\s*\(\s*([^,]+),\s*(.+?)\s*\)`)

	// Process each map() call once; calls already in closure form are kept
	return mapRe.ReplaceAllStringFunc(expression, func(fullMatch string) string {
		matches := mapRe.FindStringSubmatch(fullMatch)
		arrayExpr := strings.TrimSpace(matches[1])
		itemExpr := strings.TrimSpace(matches[2])
		if strings.HasPrefix(itemExpr, "{") {
			return fullMatch
		}

		// Convert item references to # in the closure
		// Replace 'item.' with '#.' and standalone 'item' with '#'
		closureExpr := itemExpr
		closureExpr = regexp.MustCompile(`\bitem\.`).ReplaceAllString(closureExpr, "#.")
		closureExpr = regexp.MustCompile(`\bitem\b`).ReplaceAllString(closureExpr, "#")

		// Reconstruct the map call with closure syntax
		return "map(" + arrayExpr + ", {" + closureExpr + "})"
	})
}
