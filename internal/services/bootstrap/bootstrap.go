// Package bootstrap restores what a client had before a restart: the cart
// and the last secured transaction.
package bootstrap

import (
	"context"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
	"payquick/internal/security"
)

// Retriever reads a stored value. Absent and unreadable values look the
// same: Retrieve reports false and dst is left alone.
type Retriever interface {
	Retrieve(ctx context.Context, key string, dst any) bool
}

// Snapshot is the restored state. Nil fields were not found.
type Snapshot struct {
	Cart            *models.Cart
	LastTransaction *models.SecuredTransaction
}

// Load never fails: anything that cannot be restored is skipped and the
// client starts from a blank state for that part.
func Load(ctx context.Context, store Retriever, log logging.Logger) Snapshot {
	var snap Snapshot

	var cart *models.Cart
	if store.Retrieve(ctx, securestore.KeyCart, &cart) && cart != nil {
		snap.Cart = cart
	}

	var tx *models.SecuredTransaction
	if store.Retrieve(ctx, securestore.KeyLastTransaction, &tx) {
		// A cleared transaction is stored as null.
		if tx != nil && security.ValidateTransactionData(tx) {
			snap.LastTransaction = tx
		} else if tx != nil {
			log.Warn(ctx, "bootstrap: stored transaction is incomplete, ignoring")
		}
	}

	log.Debug(ctx, "bootstrap complete",
		"cart_restored", snap.Cart != nil,
		"transaction_restored", snap.LastTransaction != nil,
	)
	return snap
}
