package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeSnapshotID computes a deterministic snapshot identifier using SHA256.
// Formula: SHA256(user_count|verification_count|transaction_count|first_tx|last_tx)
// Timestamps are Unix milliseconds; zero when the snapshot has no transactions.
// Returns hex-encoded hash (64 characters). Two runs over the same snapshot
// produce the same identifier, which is stamped into the report header.
func ComputeSnapshotID(userCount, verificationCount, transactionCount int, firstTx, lastTx time.Time) string {
	firstMs := int64(0)
	lastMs := int64(0)
	if !firstTx.IsZero() {
		firstMs = firstTx.UTC().UnixMilli()
	}
	if !lastTx.IsZero() {
		lastMs = lastTx.UTC().UnixMilli()
	}

	data := fmt.Sprintf("%d|%d|%d|%d|%d",
		userCount,
		verificationCount,
		transactionCount,
		firstMs,
		lastMs,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
