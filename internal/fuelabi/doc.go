// Package fuelabi lowers a Fuel program ABI, its type catalogue and its
// logged-types table, to type IR.
//
// Every concrete catalogue entry becomes a declaration named type<id>.
// Generic placeholders ("generic T") produce no declaration; they become the
// type parameters of the entries that list them. Logged types are resolved
// to concrete applications and given event names derived from their type
// field, suffixed 2, 3, ... on collision.
package fuelabi
