// Package di provides a minimal string-token service registry used to wire
// modules together at startup. Registration happens single-threaded during
// boot; lookups after that are read-only.
package di

import "fmt"

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	Get(token string) any
}

// Container is the write side used during module registration.
type Container interface {
	ServiceRegistry
	Register(token string, service any)
}

type container struct {
	services map[string]any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{services: make(map[string]any)}
}

func (c *container) Register(token string, service any) {
	c.services[token] = service
}

func (c *container) Get(token string) any {
	return c.services[token]
}

// MustGet resolves a token to a concrete type, panicking on a missing or
// mistyped registration. Wiring errors are programmer errors caught at boot.
func MustGet[T any](r ServiceRegistry, token string) T {
	svc := r.Get(token)
	if svc == nil {
		panic(fmt.Sprintf("di: service %q not registered", token))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has unexpected type %T", token, svc))
	}
	return typed
}
