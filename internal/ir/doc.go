// Package ir provides the type intermediate representation shared by the
// ABI lowerings, the dependency resolver and the renderers.
//
// This package contains the data model and structural queries only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - TypeIdent and TypeExpr are sealed interfaces; renderers go through
//     Visitor / MatchExpr so every variant is handled
//   - Nodes are immutable once built; constructors copy slices
//   - Field names keep their wire spelling next to the escaped emission name
//   - Generic parameter names are lower-cased for emission
package ir
