package notification

import (
	"context"

	"fleetdesk/models"
)

// Dispatcher receives ledger events after every ledger-affecting mutation and
// owns their delivery (driver push + dashboard broadcast). The ledger treats
// dispatch failures as log-and-forget: the recorded payment is the source of
// truth, so delivery problems never undo or block a ledger write.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.LedgerEvent) error
}
