package rpc

import (
	"context"
	"fmt"
	"sort"

	"countries/internal/faults"
)

// OperationKey identifies an operation by the qualified name of its request payload
type OperationKey struct {
	Namespace string `json:"namespace"`
	Name      string `json:"operation"`
}

func (k OperationKey) String() string {
	return fmt.Sprintf("{%s}%s", k.Namespace, k.Name)
}

// Payload is an inbound message body that has not been bound to a type yet
type Payload interface {
	Decode(v any) error
}

// HandlerFunc handles one operation and returns the response body
type HandlerFunc func(ctx context.Context, p Payload) (any, error)

// Router maps operation keys to handlers.
// Routes are registered before serving; lookups are read-only.
type Router struct {
	routes map[OperationKey]HandlerFunc
}

func NewRouter() *Router {
	return &Router{routes: make(map[OperationKey]HandlerFunc)}
}

// Handle registers h for key. Registering a key twice panics.
func (r *Router) Handle(key OperationKey, h HandlerFunc) {
	if _, exists := r.routes[key]; exists {
		panic(fmt.Sprintf("rpc: duplicate route for %s", key))
	}
	r.routes[key] = h
}

func (r *Router) Lookup(key OperationKey) (HandlerFunc, bool) {
	h, ok := r.routes[key]
	return h, ok
}

// Dispatch runs the handler registered for key
func (r *Router) Dispatch(ctx context.Context, key OperationKey, p Payload) (any, error) {
	h, ok := r.Lookup(key)
	if !ok {
		return nil, faults.New(faults.UnknownOperation, fmt.Sprintf("No endpoint mapping found for %s", key))
	}
	return h(ctx, p)
}

// Operations returns the registered keys sorted by namespace and name
func (r *Router) Operations() []OperationKey {
	keys := make([]OperationKey, 0, len(r.routes))
	for k := range r.routes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Namespace != keys[j].Namespace {
			return keys[i].Namespace < keys[j].Namespace
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}
