// Package providers contains built-in provider bundles and the role helpers
// they are assembled from.
package providers
