package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// hmacSum returns HMAC-SHA256(salt, YYYY-MM-DD) for the date.
func hmacSum(date time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return h.Sum(nil)
}

// PuzzleSeed returns the deterministic generator seed for a date using the
// first 8 bytes of HMAC(salt, YYYY-MM-DD). Every player sees the same
// puzzle on the same day as long as the salt matches.
func PuzzleSeed(date time.Time, salt string) int64 {
	sum := hmacSum(date, salt)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// DifficultyFor picks the day's difficulty from the next 8 bytes of the
// same keyed hash, so the level rotates with the date without any stored
// schedule.
func DifficultyFor(date time.Time, salt string) sudoku.Difficulty {
	sum := hmacSum(date, salt)
	n := binary.BigEndian.Uint64(sum[8:16])
	return sudoku.Difficulties[n%uint64(len(sudoku.Difficulties))]
}
