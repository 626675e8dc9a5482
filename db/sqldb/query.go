package sqldb

import (
	"context"
	"fmt"
	"log"

	"github.com/naderabdullah/cardforge/orm"
)

func QueryItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](
	ctx context.Context,
	h Handle,
	rawSQLStmt string,
	args ...any, // variadic
) ([]*M, error) { // Returns a Slice of Model-Pointers
	rows, err := h.QueryRows(ctx, rawSQLStmt, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Printf("rows.Close() failed: %v", closeErr)
		}
	}()
	return RowsToNewItems[M, MP](rows)
}

func RowsToNewItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](rows Rows) ([]*M, error) { // Returns a Slice of Model-Pointers
	var itemPtrs []*M
	for rows.Next() {
		var item M     // struct with zero values for the fields
		p := MP(&item) // p is *M, which satisfies targetFieldsProvider interface
		// Scan the Fields of Each Row to the Fields of the new struct of the Model
		if err := rows.Scan(p.TargetFields()...); err != nil {
			return nil, fmt.Errorf("scan failed: %v", err)
		}
		itemPtrs = append(itemPtrs, &item) // Collect the pointers
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %v", err)
	}
	return itemPtrs, nil
}

// QueryCollection queries items into an ordered orm.Collection keyed by
// model ID, preserving row order.
func QueryCollection[
	M any, // Model struct
	MP ScannableIdentifiable[M, ID], // *Model Implementing ScannableIdentifiable[M, ID]
	ID comparable,
](
	ctx context.Context,
	h Handle,
	rawSQLStmt string,
	args ...any, // variadic
) (*orm.Collection[MP, ID], error) {
	itemPtrs, err := QueryItems[M, MP](ctx, h, rawSQLStmt, args...)
	if err != nil {
		return nil, err
	}
	mps := make([]MP, len(itemPtrs))
	for i, p := range itemPtrs {
		mps[i] = MP(p)
	}
	return orm.NewOrderedCollection[MP, ID](mps), nil
}
