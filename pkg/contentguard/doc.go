// Package contentguard scans arbitrary command values for forbidden textual
// content such as markup, shell metacharacters and control characters.
//
// The scanner does not know the shape of the values it receives. It walks
// them with reflection: strings are matched against the forbidden pattern,
// other scalars are ignored, and structs, slices, arrays, maps, pointers and
// interfaces are descended into. Every offending string produces exactly one
// validator.ValidationError tagged with validator.SourceContent and the
// property path of the string:
//
//	name                 top-level field
//	contact.email        nested struct field
//	tags[1]              second element of a slice
//	tiers[0].label       field of a slice element
//	attributes[region]   map entry
//
// Path segments use the json tag name of a field when present and the Go
// field name otherwise. Embedded structs are flattened into their parent.
//
// # Exclusions
//
// Fields whose name contains one of the configured substrings
// (case-insensitive) are skipped together with everything nested below them.
// The check applies to the single field being descended into, so a field
// named "Name" inside a struct stored under "apiKey" is never reached, while
// a sibling "keyboard" would be skipped because it contains "key".
//
// # Configuration
//
//	cfg := contentguard.DefaultConfig()
//	config.MustLoad(&cfg) // CONTENT_GUARD_* environment overrides
//
//	scanner := contentguard.NewScanner(cfg, contentguard.WithLogger(log))
//	failures, err := scanner.Scan(ctx, cmd, "")
//
// Or from a YAML policy file:
//
//	cfg, err := contentguard.LoadFile("content-guard.yaml")
//
// # Cycles and depth
//
// References currently on the recursion stack are tracked, so cyclic graphs
// terminate; shared references outside the current branch are scanned each
// time they are reached. A non-empty struct, slice, array or map found below
// Config.MaxDepth is not descended into and is reported as a failure.
// Strings at that depth are still scanned.
package contentguard
