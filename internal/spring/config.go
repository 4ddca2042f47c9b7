package spring

import (
	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/physics"
	"go.uber.org/zap"
)

// Hooks are the lifecycle callbacks of one animation.
type Hooks struct {
	OnStart    func()
	OnUpdate   func(value float64)
	OnComplete func(value float64)
	OnRest     func(value float64)
}

type Config struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`

	// Velocity is the initial velocity of a new animation.
	Velocity float64 `yaml:"velocity"`

	RestSpeed float64 `yaml:"rest_speed"`
	RestDelta float64 `yaml:"rest_delta"`

	// Clamp keeps the position between the start value and the target.
	Clamp bool `yaml:"clamp"`

	Integrator string `yaml:"integrator,omitempty"`

	Hooks Hooks `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Stiffness:  physics.DefaultStiffness,
		Damping:    physics.DefaultDamping,
		Mass:       physics.DefaultMass,
		RestSpeed:  physics.DefaultRestSpeed,
		RestDelta:  physics.DefaultRestDelta,
		Integrator: integrators.Default,
	}
}

// Override is a partial Config. Nil fields keep the base value; non-nil
// hooks replace the base hooks one by one.
type Override struct {
	Stiffness  *float64 `yaml:"stiffness,omitempty"`
	Damping    *float64 `yaml:"damping,omitempty"`
	Mass       *float64 `yaml:"mass,omitempty"`
	Velocity   *float64 `yaml:"velocity,omitempty"`
	RestSpeed  *float64 `yaml:"rest_speed,omitempty"`
	RestDelta  *float64 `yaml:"rest_delta,omitempty"`
	Clamp      *bool    `yaml:"clamp,omitempty"`
	Integrator *string  `yaml:"integrator,omitempty"`

	Hooks Hooks `yaml:"-"`
}

// Float and Bool build Override fields inline.
func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool        { return &v }

// Merge returns c with every field set in o applied on top.
func (c Config) Merge(o *Override) Config {
	if o == nil {
		return c
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&c.Stiffness, o.Stiffness)
	setF(&c.Damping, o.Damping)
	setF(&c.Mass, o.Mass)
	setF(&c.Velocity, o.Velocity)
	setF(&c.RestSpeed, o.RestSpeed)
	setF(&c.RestDelta, o.RestDelta)
	if o.Clamp != nil {
		c.Clamp = *o.Clamp
	}
	if o.Integrator != nil {
		c.Integrator = *o.Integrator
	}

	if o.Hooks.OnStart != nil {
		c.Hooks.OnStart = o.Hooks.OnStart
	}
	if o.Hooks.OnUpdate != nil {
		c.Hooks.OnUpdate = o.Hooks.OnUpdate
	}
	if o.Hooks.OnComplete != nil {
		c.Hooks.OnComplete = o.Hooks.OnComplete
	}
	if o.Hooks.OnRest != nil {
		c.Hooks.OnRest = o.Hooks.OnRest
	}
	return c
}

// Normalize replaces values that would make the integrator undefined:
// non-finite numbers, a non-positive mass and non-positive rest
// thresholds. Everything else is reported and kept.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	c.Stiffness = finite(c.Stiffness, def.Stiffness, "stiffness")
	c.Damping = finite(c.Damping, def.Damping, "damping")
	c.Mass = finite(c.Mass, def.Mass, "mass")
	c.Velocity = finite(c.Velocity, 0, "velocity")
	c.RestSpeed = finite(c.RestSpeed, def.RestSpeed, "rest_speed")
	c.RestDelta = finite(c.RestDelta, def.RestDelta, "rest_delta")

	for _, adv := range physics.Diagnose(c.params(nil)) {
		fields := []zap.Field{zap.String("field", adv.Field), zap.String("advice", adv.Message)}
		if adv.Field == "mass" && c.Mass <= 0 {
			fields = append(fields, zap.Error(dynamo.ErrInvalidMass))
		}
		diag.Advise("spring config", fields...)
	}

	if c.Mass <= 0 {
		c.Mass = def.Mass
	}
	if c.RestSpeed <= 0 {
		c.RestSpeed = def.RestSpeed
	}
	if c.RestDelta <= 0 {
		c.RestDelta = def.RestDelta
	}
	return c
}

// Params resolves c into integrator parameters. An unknown integrator name
// falls back to the default one.
func (c Config) Params() physics.Params {
	integ, err := integrators.ByName(c.Integrator)
	if err != nil {
		diag.Advise("spring config", zap.Error(err))
		integ, _ = integrators.ByName(integrators.Default)
	}
	return c.params(integ)
}

func (c Config) params(integ dynamo.Integrator) physics.Params {
	return physics.Params{
		Stiffness:  c.Stiffness,
		Damping:    c.Damping,
		Mass:       c.Mass,
		RestSpeed:  c.RestSpeed,
		RestDelta:  c.RestDelta,
		Dt:         physics.FrameStep,
		Integrator: integ,
	}
}

func finite(v, fallback float64, field string) float64 {
	if !dynamo.IsFinite(v) {
		diag.Advise("non-finite input replaced", zap.String("field", field), zap.Error(dynamo.ErrNonFinite))
	}
	return dynamo.Finite(v, fallback)
}
