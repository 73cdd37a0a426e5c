package database

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// OwnerCategoryLockKey is the pg_advisory_xact_lock key that serializes budget
// window changes and transaction linking for one (owner, category) pair.
func OwnerCategoryLockKey(owner, category uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(owner[:])
	h.Write([]byte{0})
	h.Write(category[:])

	return int64(h.Sum64())
}
