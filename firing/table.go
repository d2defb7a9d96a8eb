package firing

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/jinx/archetype"
	"github.com/milk9111/jinx/prefabs"
)

var ErrInvalidPattern = errors.New("firing: invalid pattern")

type CallKind string

const (
	CallRand   CallKind = "rand"
	CallAim    CallKind = "aim"
	CallScript CallKind = "script"
)

type Call struct {
	Kind   CallKind
	Odds   int
	VX, VY float64
	Angle  float64
	Every  int
	Speed  float64
	Weapon string
	script *ScriptPattern
}

// Pattern is every call one archetype makes each frame, in order.
type Pattern []Call

// Table maps enemy archetypes to their firing pattern. Kinds without an
// entry never fire.
type Table struct {
	patterns map[archetype.Kind]Pattern
}

// ScriptLoader fetches script source by name.
type ScriptLoader func(name string) ([]byte, error)

// NewTable validates a firing spec and compiles any scripts it references.
func NewTable(spec prefabs.FiringSpec, load ScriptLoader) (*Table, error) {
	t := &Table{patterns: make(map[archetype.Kind]Pattern, len(spec.Archetypes))}
	compiled := make(map[string]*ScriptPattern)

	for name, calls := range spec.Archetypes {
		kind, err := archetype.ByName(name)
		if err != nil {
			return nil, fmt.Errorf("firing: %w", err)
		}
		if kind.Faction() != archetype.FactionEnemy {
			return nil, fmt.Errorf("%w: %s is not an enemy", ErrInvalidPattern, name)
		}

		pattern := make(Pattern, 0, len(calls))
		for i, c := range calls {
			call, err := buildCall(c)
			if err != nil {
				return nil, fmt.Errorf("firing: %s call %d: %w", name, i, err)
			}
			if call.Kind == CallScript {
				sp, ok := compiled[c.Script]
				if !ok {
					if load == nil {
						return nil, fmt.Errorf("%w: %s call %d needs a script loader", ErrInvalidPattern, name, i)
					}
					src, err := load(c.Script)
					if err != nil {
						return nil, fmt.Errorf("firing: load script %s: %w", c.Script, err)
					}
					sp, err = CompileScript(c.Script, src)
					if err != nil {
						return nil, err
					}
					compiled[c.Script] = sp
				}
				call.script = sp
			}
			pattern = append(pattern, call)
		}
		t.patterns[kind] = pattern
	}
	return t, nil
}

// LoadTable builds the table from prefabs/firing.yaml.
func LoadTable() (*Table, error) {
	spec, err := prefabs.LoadFiring()
	if err != nil {
		return nil, err
	}
	return NewTable(spec, prefabs.LoadScript)
}

func buildCall(c prefabs.FiringCallSpec) (Call, error) {
	call := Call{
		Kind:   CallKind(c.Kind),
		Odds:   c.Odds,
		VX:     c.VX,
		VY:     c.VY,
		Angle:  c.Angle,
		Every:  c.Every,
		Speed:  c.Speed,
		Weapon: c.Weapon,
	}
	switch call.Kind {
	case CallRand:
		if call.Odds <= 0 {
			return Call{}, fmt.Errorf("%w: rand odds must be positive", ErrInvalidPattern)
		}
	case CallAim:
		if call.Every <= 0 {
			return Call{}, fmt.Errorf("%w: aim every must be positive", ErrInvalidPattern)
		}
	case CallScript:
		if c.Script == "" {
			return Call{}, fmt.Errorf("%w: script call without script", ErrInvalidPattern)
		}
	default:
		return Call{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPattern, c.Kind)
	}
	return call, nil
}

func (t *Table) Pattern(kind archetype.Kind) Pattern {
	if t == nil {
		return nil
	}
	return t.patterns[kind]
}

// Fire evaluates kind's pattern for one frame. It depends only on its
// arguments and the draws it takes from rng.
func (t *Table) Fire(rng Rand, kind archetype.Kind, from Shooter, target Point, frame int, dt float64) []Spawn {
	pattern := t.Pattern(kind)
	if len(pattern) == 0 {
		return nil
	}

	var out []Spawn
	for _, c := range pattern {
		switch c.Kind {
		case CallRand:
			if s, ok := RandFire(rng, c.Odds, dt, from, c.VX, c.VY, c.Angle, c.Weapon); ok {
				out = append(out, s)
			}
		case CallAim:
			if s, ok := AimFire(frame, c.Every, c.Speed, from.Center, target, c.Weapon); ok {
				out = append(out, s)
			}
		case CallScript:
			spawns, err := c.script.Eval(ScriptInput{
				Frame:   frame,
				DT:      dt,
				Shooter: from,
				Target:  target,
				Odds:    c.Odds,
				Weapon:  c.Weapon,
				Rng:     rng,
			})
			if err != nil {
				log.Printf("firing: %s script %s: %v", kind, c.script.Name(), err)
				continue
			}
			out = append(out, spawns...)
		}
	}
	return out
}
