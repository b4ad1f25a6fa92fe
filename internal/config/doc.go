// Package config loads indexgen.cue project files.
//
// A project file is unified with the embedded #Project definition, so
// unknown fields, bad ecosystems and malformed contract names are reported
// with their CUE position. Defaults (output directory, parallelism) come
// from the definition.
package config
