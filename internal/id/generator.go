package id

import (
	"strconv"
	"time"

	fid "github.com/amterp/flexid"
)

// Generator produces a new card id on each call.
type Generator func() string

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID.
func Generate() string {
	return generator.MustGenerate()
}

// Sequence returns a Generator yielding prefix1, prefix2, ... Useful in tests
// where ids must be predictable.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
