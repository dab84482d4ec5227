// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - CatalogStore: read-only access to clusters and representative entries
//   - AlignmentStore: completed-pair reads and idempotent result writes
//   - Aligner: one comparison capability (CE, TM-align, FATCAT, ...)
//   - TaskQueue: moves task descriptors between enqueuer and worker
//
// # Optional Interfaces
//
//   - SchedulerStore: persisted scheduler state; without it the
//     scheduler cannot run, but one-shot commands still work
//   - ConfigStore: run configuration; defaults apply without it
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
