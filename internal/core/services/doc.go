// Package services implements the driving port interfaces.
// Services contain the core business logic - pending-work resolution,
// pair enumeration, result merging - and orchestrate calls to driven
// ports (adapters).
package services
