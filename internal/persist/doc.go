// Package persist stores the calculator's record lists.
//
// A Gateway maps string keys to string lists. The production gateway
// keeps both lists in a single TOML document and writes it atomically.
// Writer wraps a Gateway with per-key write-behind: mutations commit in
// memory first and the snapshot is saved afterward, best effort, with
// writes to the same key strictly serialized and coalesced latest-wins.
// Watcher reports external modifications of the backing file so the
// owning session can reload.
package persist
