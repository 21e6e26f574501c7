// Package domain defines the method requests accepted by the scoring API and
// the declarative field schemas that validate them.
//
// A schema is an ordered list of Field descriptors. Parsing checks presence,
// nullability and the kind-specific rule of every field in declaration order
// and stops at the first violation, so clients always see one message.
package domain
