// Package expr provides CEL (Common Expression Language) expressions over
// scroll windows.
//
// Environments created with [WindowVariables] declare:
//   - `vertical` (map<string, dyn>): The rendered rows window
//   - `horizontal` (map<string, dyn>): The rendered cells window
//   - `step` (map<string, dyn>): The replayed step
//
// Window maps carry the fields of a window state (startIndex, itemCount,
// virtualItemCountBefore, ...) plus `endIndex`, `total` and `renders`.
// The functions `windowEnd(w)` and `windowContains(w, i)` operate on them.
package expr
