package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Txn runs a function inside a single MongoDB transaction scope. Activity
// logging uses it to commit the activity insert and the owner's stats
// update together; any error inside the scope aborts both writes.
type Txn struct {
	client *mongo.Client
}

func NewTxn(client *mongo.Client) *Txn {
	return &Txn{client: client}
}

// WithTransaction starts a session, runs fn under a transaction and
// commits on success. fn receives a session context that must be passed to
// every store call belonging to the transaction.
func (t *Txn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
