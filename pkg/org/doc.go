// Package org builds validated organizational forests from flat employee
// records.
//
// The entry point is [Build], which turns a slice of [Record] values into a
// [Forest]: a primary rooted tree, zero or more secondary trees (orphans and
// disconnected sub-organizations), an identifier lookup table covering every
// node, and dataset-level statistics.
//
// # Construction rules
//
//   - Identifiers are compared as trimmed strings; rows with blank
//     identifiers are discarded before construction.
//   - Duplicate identifiers are resolved first-wins by input order.
//   - A record whose manager identifier is unknown becomes the root of its
//     own secondary tree and is counted as an orphan.
//   - Manager references that would close a cycle are rejected, never
//     followed; construction always terminates.
//
// Structural problems (cycles, orphans) are non-fatal: they are reported as
// warnings on the resulting Forest. Only an empty dataset or a missing
// required column aborts construction.
//
// # Metrics
//
// Depth, descendant counts and span-of-control figures are computed during
// the same traversal that performs cycle detection. Health classification is
// deliberately not stored: it is derived on read from the stored direct
// report count and a [Thresholds] pair, so changing thresholds never requires
// rebuilding the forest.
package org
