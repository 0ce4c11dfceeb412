package words

import (
	"context"
	"crypto/sha256"
	"errors"
	"math/big"
)

// DailyCount is the size of one day's rotation.
const DailyCount = 4

var ErrNoEntries = errors.New("store has no qualifying entries")

var seedModulus = new(big.Int).Lsh(big.NewInt(1), 31)

// DateSeed derives the numeric seed for a calendar date string: the
// sha256 digest read as an unsigned big integer, reduced mod 2^31.
// Pure, no RNG state, so any two processes agree on a date's selection.
func DateSeed(date string) int64 {
	sum := sha256.Sum256([]byte(date))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, seedModulus).Int64()
}

// SelectDaily picks the day's words. For a fixed date and unchanged store
// contents the result is identical on every call. A store with fewer than
// DailyCount qualifying words yields them all, which is degraded but
// valid.
func SelectDaily(ctx context.Context, store Store, date string) ([]Entry, error) {
	return store.DeterministicSample(ctx, DateSeed(date), DailyCount)
}

// SelectOffset returns the single entry at position offset within the
// same four entries SelectDaily yields for the date. The two access
// patterns share one query so they can never drift apart.
func SelectOffset(ctx context.Context, store Store, date string, offset int) (Entry, error) {
	entries, err := SelectDaily(ctx, store, date)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNoEntries
	}
	return entries[offset%len(entries)], nil
}
