// Package models defines the core domain models for BitHub.
//
// # Models
//
//   - Bit: a user-submitted catalog entry that other users rate from 1 to 5
//   - User: a registered account; its display name is what bits are credited to
//
// # Design Principles
//
// 1. **Documents, not rows**: a Bit carries its whole ratings map, the way the store
// hands it out in a snapshot. Writes replace named fields wholesale (last writer wins).
// 2. **Names over IDs**: ownership is resolved by display name, so AuthorID may be empty
// for bits credited to a name that has no account behind it.
// 3. **Derived fields are stored**: Bit.Rating is recomputed on every rating write and
// persisted alongside the ratings it was computed from.
package models
