package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Default is the integrator used when a spring names none.
const Default = "rk4"

var registry = map[string]func() dynamo.Integrator{
	"euler":    func() dynamo.Integrator { return NewEuler() },
	"rk4":      func() dynamo.Integrator { return NewRK4() },
	"verlet":   func() dynamo.Integrator { return NewVerlet() },
	"analytic": func() dynamo.Integrator { return NewAnalytic() },
}

// shared instances; every integrator here is stateless.
var shared = func() map[string]dynamo.Integrator {
	m := make(map[string]dynamo.Integrator, len(registry))
	for name, ctor := range registry {
		m[name] = ctor()
	}
	return m
}()

// ByName returns the integrator registered under name. The empty name
// selects [Default].
func ByName(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	integ, ok := shared[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return integ, nil
}

// Names lists registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
