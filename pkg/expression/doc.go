// Package expression provides a expr-lang/expr-backed expression
// evaluator used by the `expression` example node (pkg/examplenodes).
// pkg/registry's hot-loaded manifests (spec.md §4.5) compile their
// handler bodies with expr-lang directly, not through this package. It
// supports data access, operators, built-in functions, and array/map
// transformations.
//
// # Overview
//
// The package implements a small domain-specific language for dynamic
// evaluation of expressions against a node's input value and a set of
// named variables. It supports data access, operators, functions, and
// complex data transformations.
//
// # Features
//
//   - Field access: Navigate object hierarchies (user.profile.name)
//   - Array indexing: Access array elements (items[0], items[-1] for last)
//   - Operators: Arithmetic, comparison, logical, string operations
//   - Functions: Rich set of built-in functions (len, upper, lower, etc.)
//   - Type coercion: Automatic type conversion where appropriate
//   - Null safety: Graceful handling of null/undefined values
//   - Variables: Access named graph variables alongside the input value
//
// # Expression Syntax
//
// Basic field access:
//
//	user.name           // Access field
//	user.profile.email  // Nested field access
//	items[0]            // Array index
//	items[-1]           // Last element
//	data.users[5].name  // Combined access
//
// Operators:
//
//	x + y               // Addition
//	x - y               // Subtraction
//	x * y               // Multiplication
//	x / y               // Division
//	x % y               // Modulo
//	x == y              // Equality
//	x != y              // Inequality
//	x > y, x < y        // Comparison
//	x >= y, x <= y      // Comparison
//	x && y              // Logical AND
//	x || y              // Logical OR
//	!x                  // Logical NOT
//
// String operations:
//
//	"Hello" + " " + "World"  // Concatenation
//	name + " (" + age + ")"  // Mixed types
//
// # Built-in Functions
//
// String functions:
//
//	upper(text)         // Convert to uppercase
//	lower(text)         // Convert to lowercase
//	trim(text)          // Remove whitespace
//	split(text, sep)    // Split into array
//	join(array, sep)    // Join array elements
//	replace(text, old, new)  // Replace substring
//	contains(text, substr)  // Check if contains
//	startsWith(text, prefix)  // Check prefix
//	endsWith(text, suffix)  // Check suffix
//
// Array functions:
//
//	len(array)          // Array length
//	first(array)        // First element
//	last(array)         // Last element
//	reverse(array)      // Reverse array
//	unique(array)       // Remove duplicates
//	flatten(array)      // Flatten nested arrays
//	slice(array, start, end)  // Sub-slice
//	zip(a, b, ...)      // Pairwise tuples
//
// Math functions:
//
//	abs(x)              // Absolute value
//	ceil(x)             // Ceiling
//	floor(x)            // Floor
//	round(x)            // Round to nearest
//	min(x, y, ...)      // Minimum (variadic or array)
//	max(x, y, ...)      // Maximum (variadic or array)
//	sum(x, y, ...)      // Sum (variadic or array)
//	avg(x, y, ...)      // Average (variadic or array)
//	sqrt(x)             // Square root
//	pow(x, y)           // Power
//
// Date/Time functions:
//
//	now()                    // Current time
//	parseDate(string)        // Parse date/time string or epoch
//	toEpoch(t), toEpochMillis(t)
//	fromEpoch(s), fromEpochMillis(ms)
//	dateDiff(a, b), dateAdd(t, seconds)
//	year(t), month(t), day(t), hour(t), minute(t)
//
// Null handling:
//
//	isNull(v)           // Check if nil
//	coalesce(a, b, ...) // First non-nil argument
//
// # Usage
//
// EvaluateExpression evaluates an expression against an input value and
// returns its result, used by the `expression` node:
//
//	result, err := expression.EvaluateExpression(
//	    "item.age >= 18",
//	    map[string]interface{}{"age": 25},
//	    nil,
//	)
//
// Evaluate evaluates an expression and coerces the result to a bool,
// used where a condition rather than a value is required:
//
//	ok, err := expression.Evaluate("input > 100", 150, nil)
//
// The input value is exposed in expressions as both "item" and "input".
// A *Context carries named variables and context values alongside the
// input value (exposed in expressions as "variables" and "context"):
//
//	ctx := &expression.Context{Variables: map[string]interface{}{"threshold": 100}}
//	ok, err := expression.Evaluate("input > variables.threshold", 150, ctx)
//
// # Type System
//
// Expressions operate over plain Go values as decoded by encoding/json:
//
//   - Number: int, int64, float64
//   - String: string
//   - Boolean: bool
//   - Array: []interface{}
//   - Object: map[string]interface{}
//   - Null: nil
//
// Node handlers convert to and from pkg/types.Value at their boundary
// (see pkg/examplenodes/expression.go), keeping this package's surface
// independent of the scheduler's value representation.
//
// # Thread Safety
//
// The package-level evaluation functions share a singleton, cached
// *ExprEngine and are safe for concurrent use by multiple goroutines.
package expression
