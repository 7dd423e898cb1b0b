// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag.

package extension

const (
	// Boolean flags

	FlagLocal = "local" // Use local config scope
	FlagRaw   = "raw"   // Raw output without markdown rendering

	// String flags

	FlagCollection = "collection" // Target collection
	FlagTitle      = "title"      // Document title
)
