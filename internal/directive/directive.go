// Package directive handles cmpreflex comment directives.
//
// # Supported Directives
//
// The package supports three directive types:
//
//	//cmpreflex:ignore     - Suppress warnings for the next line or same line
//	//cmpreflex:comparator - Check a function as an ordering function
//	//cmpreflex:pure       - Treat a function as free of side effects
//
// # Directive Placement
//
// Directives can be placed:
//   - On the line before the affected code (most common)
//   - On the same line as the affected code
//   - On a function declaration (function-level ignore, comparator, pure)
//   - Before the package declaration (file-level ignore)
//
// # Examples
//
// Line-level ignore:
//
//	slices.SortFunc(s, func(a, b T) int {
//	    //cmpreflex:ignore
//	    return 1 // This violation is suppressed
//	})
//
// Function-level ignore:
//
//	//cmpreflex:ignore
//	func compareLegacy(a, b T) int {
//	    // All violations in this function are suppressed
//	}
//
// Comparator marking:
//
//	//cmpreflex:comparator
//	func byPriority(a, b *Task) int {
//	    return a.Priority - b.Priority
//	}
//
// Pure function marking:
//
//	//cmpreflex:pure
//	func (u *User) Key() string {
//	    return u.Org + "/" + u.Name
//	}
package directive

import "strings"

const directivePrefix = "cmpreflex:"

// hasDirective checks if a comment contains the specified directive.
// Supports both "//cmpreflex:name" and "// cmpreflex:name".
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, directivePrefix+name) {
		return false
	}
	rest := text[len(directivePrefix+name):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// IsIgnoreDirective checks if a comment is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }

// IsComparatorDirective checks if a comment is a comparator directive.
func IsComparatorDirective(text string) bool { return hasDirective(text, "comparator") }

// IsPureDirective checks if a comment is a pure directive.
func IsPureDirective(text string) bool { return hasDirective(text, "pure") }
