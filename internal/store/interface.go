// Package store persists entries and hospitals in Memgraph through the
// neo4j bolt driver. Feedings hang off their cat as :Feeding nodes; the
// in-range queries push the proximity window down into Cypher so duplicate
// detection never loads the whole map.
package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
