package notify

import "context"

// Notifier announces a freshly published catalog to a downstream sink
// (HTTP webhook, SQS, SNS, Pub/Sub) so consumers can rebuild.
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, evt CatalogEvent) error
}
