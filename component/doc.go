// Package component defines the lifecycle interface shared by the parts of
// a catalogq run and an ordered registry that starts and stops them.
//
// # Interfaces
//
//   - Component: lifecycle (Start/Stop) and Health
//   - Describable: one-line description for the startup summary
//
// Lazy implements once-only initialization that components embed when
// their setup may run either on Start or on first use.
package component
