// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (key material, bundles, sessions, wire messages) and
// contracts (primitives, stores, services) only.
package domain
