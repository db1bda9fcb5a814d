// Package mediashare provides a reusable library for account-owned media
// items with pluggable repository and blob storage backends.
//
// It exposes a single Service interface that orchestrates item creation,
// update, and deletion while keeping the bidirectional relationship between
// an account and the items it owns consistent: every item's owner field and
// the owning account's item set are changed together inside one repository
// transaction, and the uploaded asset's lifecycle is ordered around that
// transaction (stored before the create commits, released only after the
// delete commits). Implementations of repositories (e.g., memory, Postgres)
// and blob stores (e.g., memory, filesystem, S3) are provided under
// subpackages.
//
// The Service performs no authorization: callers are expected to hand it
// validated, already-authorized input and to gate edit/delete access in the
// handler layer (see the api subpackage).
package mediashare
