package notepool

import (
	"fmt"
	"strings"
)

// Query mods understood by buckets and indexes. A key query returns at most
// the one model stored under the key, a prefix query every model whose key
// starts with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a raw key and value as read from the store. Query results are
// lists of models.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns the model for key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the ABCI queries sent to one path, like "/notes".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths to their handlers. Every path is served by
// exactly one handler and the set of paths is fixed once the application is
// built.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router without any path.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// Register serves path with h. Paths start with a slash. Registering a path
// twice is a wiring mistake and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path must start with a slash: %q", path))
	}
	if _, dup := r.routes[path]; dup {
		panic(fmt.Sprintf("query path registered twice: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
