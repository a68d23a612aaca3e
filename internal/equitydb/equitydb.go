// Package equitydb reads and writes the binary equity tables built by
// pkg/hypergammon's solver, adapted from the teacher's gnubg bearoff
// reader to a simpler headerless record format.
package equitydb

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// ErrDatabaseShapeMismatch is returned when a file's size doesn't match
// any known record layout for the requested entry count.
var ErrDatabaseShapeMismatch = errors.New("equitydb: database shape mismatch")

// recordBytes is the on-disk size of one entry under the gnubg-style
// cumulative layout: five little-endian float32s, matching
// original_source's evaluator/hyper.rs `from_file` record shape
// ([win_total, win_gammon_cum, win_bg, lose_gammon_cum, lose_bg]).
const recordBytes = 20

// equityRecordBytes is the on-disk size of one entry under the
// equity-only layout: a single little-endian float32 cubeless equity
// value, for callers that only need Equity() and don't care about the
// full six-way split.
const equityRecordBytes = 4

// Layout identifies which on-disk record shape a Database was loaded
// with.
type Layout int

const (
	// LayoutProbabilities is the 20-byte gnubg cumulative layout,
	// decoded via probabilities.FromGnu.
	LayoutProbabilities Layout = iota
	// LayoutEquityOnly is a 4-byte bare float32 equity per entry.
	LayoutEquityOnly
)

// Database is an in-memory equity table indexed by a bijective
// combinatorial hash (see internal/hyperhash.Rank), one entry per
// reachable (own, opponent) checker distribution pair.
type Database struct {
	layout  Layout
	entries int
	probs   []probabilities.Probabilities // valid when layout == LayoutProbabilities
	equity  []float32                     // valid when layout == LayoutEquityOnly
}

// Load reads an equity database from path. entries is the expected
// number of table entries (e.g. hyperhash.MCombinations(k)^2); the
// file's size must match entries under exactly one of the two known
// record layouts, or Load returns ErrDatabaseShapeMismatch.
func Load(path string, entries int) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("equitydb: open %s: %w", path, err)
	}
	return decode(data, entries)
}

func decode(data []byte, entries int) (*Database, error) {
	switch len(data) {
	case entries * recordBytes:
		probs := make([]probabilities.Probabilities, entries)
		for i := 0; i < entries; i++ {
			off := i * recordBytes
			var gv [5]float32
			for j := 0; j < 5; j++ {
				gv[j] = readFloat32(data[off+j*4 : off+j*4+4])
			}
			probs[i] = probabilities.FromGnu(gv)
		}
		return &Database{layout: LayoutProbabilities, entries: entries, probs: probs}, nil
	case entries * equityRecordBytes:
		eq := make([]float32, entries)
		for i := 0; i < entries; i++ {
			eq[i] = readFloat32(data[i*4 : i*4+4])
		}
		return &Database{layout: LayoutEquityOnly, entries: entries, equity: eq}, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes for %d entries (want %d or %d)",
			ErrDatabaseShapeMismatch, len(data), entries, entries*recordBytes, entries*equityRecordBytes)
	}
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

func writeFloat32(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

// Layout reports which on-disk record shape db was loaded with.
func (db *Database) Layout() Layout {
	return db.layout
}

// Len returns the number of entries in the table.
func (db *Database) Len() int {
	return db.entries
}

// Probabilities returns the full six-way distribution at hash. If the
// database was loaded in equity-only layout it returns an error, since
// the win/loss split is not recoverable from a bare equity.
func (db *Database) Probabilities(hash int) (probabilities.Probabilities, error) {
	if hash < 0 || hash >= db.entries {
		return probabilities.Probabilities{}, fmt.Errorf("equitydb: hash %d out of range [0, %d)", hash, db.entries)
	}
	if db.layout == LayoutProbabilities {
		return db.probs[hash], nil
	}
	return probabilities.Probabilities{}, fmt.Errorf(
		"equitydb: database loaded as equity-only, full Probabilities unavailable for hash %d", hash)
}

// Equity returns the cubeless equity at hash, valid under either
// layout.
func (db *Database) Equity(hash int) (float32, error) {
	if hash < 0 || hash >= db.entries {
		return 0, fmt.Errorf("equitydb: hash %d out of range [0, %d)", hash, db.entries)
	}
	if db.layout == LayoutEquityOnly {
		return db.equity[hash], nil
	}
	return db.probs[hash].Equity(), nil
}

// WriteProbabilities writes a full LayoutProbabilities table to path,
// one 20-byte gnubg-cumulative record per entry via ToGnu.
func WriteProbabilities(path string, probs []probabilities.Probabilities) error {
	buf := make([]byte, len(probs)*recordBytes)
	for i, p := range probs {
		gv := p.ToGnu()
		off := i * recordBytes
		for j, f := range gv {
			writeFloat32(buf[off+j*4:off+j*4+4], f)
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("equitydb: write %s: %w", path, err)
	}
	return nil
}

// WriteEquityOnly writes a LayoutEquityOnly table to path, one 4-byte
// float32 equity value per entry.
func WriteEquityOnly(path string, equities []float32) error {
	buf := make([]byte, len(equities)*equityRecordBytes)
	for i, e := range equities {
		writeFloat32(buf[i*4:i*4+4], e)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("equitydb: write %s: %w", path, err)
	}
	return nil
}
