// Package builder provides fluent, immutable statement builders on top of
// the node package.
//
// Every method returns a new builder and leaves its receiver untouched, so
// a partially built statement can be branched:
//
//	base := builder.SelectFrom("person").Where("age", ">=", 18)
//	adults := base.OrderBy("last_name", "asc")
//	named := base.Where("first_name", "like", "J%")
//
// Where, joins and returning are implemented once over the node package's
// generic cloners. They are only offered on builders whose statement kind
// supports them, so InsertInto(...).Where does not exist.
//
// Errors from parsing references, operators or values are deferred: the
// first one sticks to the builder and is reported by ToNode and Compile.
package builder
