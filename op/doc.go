// Package op defines the named operation that every decoration in this module
// wraps.
//
// An Operation pairs a Func with its Meta (name, namespace, tags, annotations).
// Decorations never mutate an Operation; they return a new one whose Func wraps
// the original and whose Meta is a copy of the original's. Wrap is the single
// building block every decoration uses.
//
// Tag and Annotate attach metadata to an operation without changing its call
// behavior:
//
//	add := op.Lift("add", func(p [2]int) int { return p[0] + p[1] })
//	add = op.Tag(add, "experimental", "owner:payments")
//	add.Tags() // [experimental owner:payments]
package op
