package validator

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// RuleSetFunc builds the rules for a single command instance.
type RuleSetFunc[T any] func(ctx context.Context, cmd T) []Rule

// Registry holds declarative rule sets keyed by command type.
// It is safe for concurrent use; registration normally happens at startup.
type Registry struct {
	mu    sync.RWMutex
	rules map[reflect.Type]func(ctx context.Context, cmd any) []Rule
}

// NewRegistry creates an empty rule set registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[reflect.Type]func(ctx context.Context, cmd any) []Rule),
	}
}

// RegisterRules registers the rule set for commands of type T.
// Both T and *T commands resolve to the same rule set.
// Panics if a rule set for T is already registered.
//
// Example:
//
//	validator.RegisterRules(reg, func(ctx context.Context, cmd CreateCountry) []validator.Rule {
//	    return []validator.Rule{
//	        validator.Required("code", cmd.Code),
//	        validator.MaxLen("name", cmd.Name, 100),
//	    }
//	})
func RegisterRules[T any](r *Registry, fn RuleSetFunc[T]) {
	t := baseType(reflect.TypeFor[T]())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[t]; exists {
		panic(fmt.Sprintf("validator: %s: %s", ErrRuleSetAlreadyRegistered, t))
	}

	r.rules[t] = func(ctx context.Context, cmd any) []Rule {
		switch v := cmd.(type) {
		case T:
			return fn(ctx, v)
		case *T:
			if v == nil {
				return nil
			}
			return fn(ctx, *v)
		}
		return nil
	}
}

// Has reports whether a rule set is registered for the command's type.
func (r *Registry) Has(cmd any) bool {
	_, ok := r.lookup(cmd)
	return ok
}

// Run evaluates the rule set registered for cmd and returns the failed rules.
// Commands without a registered rule set produce no failures.
func (r *Registry) Run(ctx context.Context, cmd any) (ValidationErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fn, ok := r.lookup(cmd)
	if !ok {
		return nil, nil
	}

	return Collect(fn(ctx, cmd)...), nil
}

func (r *Registry) lookup(cmd any) (func(ctx context.Context, cmd any) []Rule, bool) {
	if cmd == nil {
		return nil, false
	}

	t := baseType(reflect.TypeOf(cmd))

	r.mu.RLock()
	fn, ok := r.rules[t]
	r.mu.RUnlock()

	return fn, ok
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
