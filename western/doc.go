// Package western implements Western notation staff objects on top of the
// core layout engine: staves with active-modifier indices, clefs, key
// signatures, time signatures, bar lines, staff groups, and the fringe
// layout that sizes and aligns the decorations at the start of every
// rendered line.
//
// # Modifier indices
//
// A [Staff] keeps cached, position-sorted indices of the clefs, key
// signatures and time signatures among its descendants. The indices answer
// "which modifier is in force at timeline position x" queries; they are
// rebuilt lazily, invalidated on any structural change below the staff,
// and cleared after every render pass.
//
// # Fringe layout
//
// At every line start, a staff reserves a fringe: staff padding, the
// active clef, the active key signature, and a time signature when one
// falls exactly on the break. [Staff.FringeLayoutAt] computes the left
// edge of each layer by walking right to left from the line's logical
// zero. Staves sharing page space join a [StaffGroup], which aligns the
// staff, clef and key signature edges across all members while leaving
// each staff's time signature right-aligned independently.
package western
