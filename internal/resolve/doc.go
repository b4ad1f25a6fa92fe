// Package resolve orders declaration sets for emission.
//
// Type definitions may refer to each other freely, so Groups clusters mutually
// recursive declarations into blocks. Schema values may not, so SchemaOrder
// produces a strict dependency-first order and rejects cycles.
package resolve
