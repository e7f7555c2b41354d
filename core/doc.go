// Package core contains the canonical catalog domain: service descriptors,
// provider role tables, the provider registry, and the per-service preference
// store. Lower-level adapters must depend on this package; core must not
// depend on provider-specific or persistence-specific adapters.
package core
