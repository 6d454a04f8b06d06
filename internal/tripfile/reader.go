package tripfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/demand-prediction/backend/internal/domain"
)

// ReadPairCounts reads at most limitRows rows from the parquet content and
// returns the (pickup, dropoff) pair counts in order of first occurrence,
// along with the number of rows actually read.
//
// Returns domain.ErrSchema (wrapped) if either required column is absent.
// The schema is checked before any row is read, so a schema failure is
// guaranteed to happen before the caller has mutated anything.
func ReadPairCounts(r io.ReaderAt, size int64, limitRows int) ([]PairCount, int, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		// An unreadable file is a schema-level failure from the caller's
		// point of view, same as a missing column.
		return nil, 0, fmt.Errorf("tripfile.ReadPairCounts: %w: open parquet: %v", domain.ErrSchema, err)
	}

	schema := f.Schema()
	pu, ok := schema.Lookup(ColumnPickup)
	if !ok {
		return nil, 0, fmt.Errorf("tripfile.ReadPairCounts: %w: missing column %q", domain.ErrSchema, ColumnPickup)
	}
	do, ok := schema.Lookup(ColumnDropoff)
	if !ok {
		return nil, 0, fmt.Errorf("tripfile.ReadPairCounts: %w: missing column %q", domain.ErrSchema, ColumnDropoff)
	}

	var (
		counts   []PairCount
		index    = make(map[Pair]int)
		rowsRead = 0
		buf      = make([]parquet.Row, 256)
	)

	for _, rg := range f.RowGroups() {
		if rowsRead >= limitRows {
			break
		}
		rows := rg.Rows()

		for rowsRead < limitRows {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				if rowsRead >= limitRows {
					break
				}
				rowsRead++

				pair, ok := pairFromRow(row, pu.ColumnIndex, do.ColumnIndex)
				if !ok {
					// Null location id — the row still counts as read,
					// it just contributes no pair.
					continue
				}
				if i, seen := index[pair]; seen {
					counts[i].Count++
				} else {
					index[pair] = len(counts)
					counts = append(counts, PairCount{Pair: pair, Count: 1})
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, 0, fmt.Errorf("tripfile.ReadPairCounts: read rows: %w", err)
			}
		}

		if err := rows.Close(); err != nil {
			return nil, 0, fmt.Errorf("tripfile.ReadPairCounts: close row group: %w", err)
		}
	}

	return counts, rowsRead, nil
}

// pairFromRow extracts the pickup and dropoff ids from a row by leaf column
// index. Returns ok=false when either value is null.
func pairFromRow(row parquet.Row, puIdx, doIdx int) (Pair, bool) {
	var (
		pair  Pair
		gotPU bool
		gotDO bool
	)
	for _, v := range row {
		switch v.Column() {
		case puIdx:
			if v.IsNull() {
				return Pair{}, false
			}
			pair.Pickup = int(v.Int64())
			gotPU = true
		case doIdx:
			if v.IsNull() {
				return Pair{}, false
			}
			pair.Dropoff = int(v.Int64())
			gotDO = true
		}
	}
	return pair, gotPU && gotDO
}
