// Package domain defines the core business entities for structalign.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Cluster / Subcluster / SubclusterEntry: the clustering catalog,
//     owned by upstream pipeline stages and read-only here
//   - AlignmentType: one configured comparison algorithm
//   - AlignmentGroup / AlignmentResult: one unordered pair under
//     comparison and its single stored result
//   - MergedRecord: the per-pair union of metric outputs
//   - AlignmentTask: one cluster's unit of schedulable work
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
