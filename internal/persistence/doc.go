// Package persistence defines the storage error taxonomy shared by the
// interchangeable store implementations.
//
// Repository interfaces live next to the services that consume them in
// internal/application; both the map-based store in persistence/memory and the
// SQLite store in persistence/sqlite implement those interfaces directly and
// signal failures with the sentinels declared here. Services translate the
// sentinels into their own error vocabulary before they reach callers.
package persistence
