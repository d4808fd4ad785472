// Package impact reports how a project status change affects the project's
// fee proposals.
//
// The analysis is read-only: it lists the proposals that reference the
// project and suggests the proposal status that matches the new project
// status. Applying the suggestion is a separate, explicit step.
package impact
