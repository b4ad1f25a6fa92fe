// Package schema holds user entity descriptors and lowers them to type IR.
//
// Descriptors are YAML:
//
//	entities:
//	  - name: User
//	    fields:
//	      - {name: id, type: "ID!"}
//	      - {name: tokens, type: "[Token!]!", derivedFrom: owner}
//	enums:
//	  - {name: Status, values: [Active, Closed]}
//
// Field types use GraphQL syntax.
package schema
