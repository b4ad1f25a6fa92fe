// Package codegen runs a project through lowering and rendering.
//
// Each contract is lowered on its own worker and rendered to a ReScript
// module, a TypeScript declaration file and JavaScript fixture defaults.
// Entities from the user schema and from EVM contract imports are rendered
// once, after every contract has been lowered. Artifact order follows the
// project's contract order regardless of scheduling.
package codegen
