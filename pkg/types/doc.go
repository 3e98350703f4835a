// Package types provides shared type definitions used across the factmap packages.
//
// SourceID and EntityKind are referenced by the registry, the entity model and
// the reconciliation engine, so they live here to avoid import cycles.
//
//nolint:revive // Package name 'types' is appropriate for common type definitions
package types
