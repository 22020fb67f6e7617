// Package types defines the Medium, EntityStore, Collection and SessionStore
// interfaces, the typed entities stored by the Nexus mock backend, and the
// standard error values shared by every implementation.
//
// Implementations live under internal/; consumers construct them through
// pkg/mockapi and depend only on the interfaces declared here.
package types
