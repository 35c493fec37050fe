// Package export defines the outbound ports for mirroring saved
// transactions to an external destination (a spreadsheet, or an
// in-memory sink in tests).
package export

import (
	"context"

	"grana/internal/core"
)

type (
	// TransactionAppender appends one transaction to the export
	// destination and returns a destination-specific row reference.
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TransactionDeleter removes a previously exported transaction.
	TransactionDeleter interface {
		Delete(ctx context.Context, t core.Transaction) error
	}
)
