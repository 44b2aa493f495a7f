// Package transcoder converts between the schema types and a host-neutral
// value tree.
//
// Every embedding first reads its host value into a tree, then hands the
// tree to this package; on the way out the order is reversed:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ Host value ←→ [reader/writer] ←→ tree ←→ [transcoder] ←→ Go  │
//	└──────────────────────────────────────────────────────────────┘
//
// # Tree Values
//
//	Go type          Host meaning
//	─────────────────────────────────
//	nil              null / undefined
//	bool             boolean
//	float64, int64   number (|n| ≤ MaxSafeInteger for integers)
//	string           UTF-8 string
//	[]any            array
//	map[string]any   object / keyed mapping
//
// # Decoding
//
// DecodeConfig runs three steps: a shape pass that walks the struct tags
// of schema.Config and reports missing required keys, wrong host types and
// out-of-range integers with a field path; a mapstructure decode into a
// fresh value; and schema normalization plus validation. Unknown keys are
// ignored.
//
// # Encoding
//
// EncodeResult is total for every valid schema.Result. The only failures
// are a result carrying zero or two arms, and integers that a double
// cannot hold exactly; both are encode-phase errors.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package transcoder
