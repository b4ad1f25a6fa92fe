// Package render turns type IR into target-language text.
//
// Four renderings exist for every TypeIdent: ReScript type syntax
// (TypeString), schema combinators (Schema), TypeScript types (TSType) and
// default literals (DefaultRescript, DefaultJS). Each is a visitor over the
// sealed IR, so adding a variant breaks compilation here until it is handled.
//
// Declaration-level functions order their output with package resolve.
// All functions are pure and safe for concurrent use.
package render
