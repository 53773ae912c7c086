// Package model defines domain entities and data structures for the ClubHub API.
//
// The model package contains the struct definitions for domain objects, partial
// update types and the API error envelope. Models are used across all layers of
// the application.
//
// # Domain Entities
//
//   - User: Platform account with a bcrypt credential and a role
//   - Club: Community group with optional admin and leader users
//   - Membership: Link between a user and a club (unique per pair)
//   - Announcement: General or club-scoped notice
//   - Event: Scheduled activity, optionally attached to a club
//
// # Partial Updates
//
// ClubUpdate, EventUpdate and UserUpdate use pointer fields. A nil field
// means "leave unchanged", which gives merge-on-absence semantics:
//
//	upd := model.ClubUpdate{Name: &name}
//	if upd.IsEmpty() { ... }
//
// # JSON Serialization
//
// Models use camelCase json tags because the front end consumes them
// directly. Password hashes are never serialized.
//
// # Error Types
//
// APIError in errors.go is the uniform error envelope:
//
//	{"error": "Club not found"}
package model
