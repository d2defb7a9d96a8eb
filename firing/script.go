package firing

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptInput is what a scripted pattern can see. Rng backs the script's
// chance(odds) and roll() functions; without it chance is always false and
// roll is 0.
type ScriptInput struct {
	Frame   int
	DT      float64
	Shooter Shooter
	Target  Point
	Odds    int
	Weapon  string
	Rng     Rand
}

// ScriptPattern is a tengo program that sets a global `spawns` to a list of
// maps with vx, vy and optionally x, y, angle and weapon.
//
// chance(odds) draws exactly like a rand call with those odds, so a script
// that calls it in the same order as a list of rand calls takes the same
// draws and fires the same shots.
type ScriptPattern struct {
	name     string
	compiled *tengo.Compiled
}

var scriptFloats = []string{"dt", "ex", "ey", "etop", "px", "py"}

func chanceFunc(rng Rand, dt float64) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "chance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		odds, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "odds", Expected: "int", Found: args[0].TypeName()}
		}
		if rng == nil || odds <= 0 {
			return tengo.FalseValue, nil
		}
		if rng.Intn(AdjustedOdds(odds, dt)) == 0 {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}

func rollFunc(rng Rand) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "roll", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		if rng == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: rng.Float64()}, nil
	}}
}

func CompileScript(name string, src []byte) (*ScriptPattern, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))

	if err := script.Add("frame", 0); err != nil {
		return nil, fmt.Errorf("firing: script %s: %w", name, err)
	}
	for _, v := range scriptFloats {
		if err := script.Add(v, 0.0); err != nil {
			return nil, fmt.Errorf("firing: script %s: %w", name, err)
		}
	}
	if err := script.Add("odds", 0); err != nil {
		return nil, fmt.Errorf("firing: script %s: %w", name, err)
	}
	if err := script.Add("weapon", ""); err != nil {
		return nil, fmt.Errorf("firing: script %s: %w", name, err)
	}
	if err := script.Add("chance", chanceFunc(nil, 0)); err != nil {
		return nil, fmt.Errorf("firing: script %s: %w", name, err)
	}
	if err := script.Add("roll", rollFunc(nil)); err != nil {
		return nil, fmt.Errorf("firing: script %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("firing: compile %s: %w", name, err)
	}
	return &ScriptPattern{name: name, compiled: compiled}, nil
}

func (p *ScriptPattern) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Eval runs the script against a private copy of its globals.
func (p *ScriptPattern) Eval(in ScriptInput) ([]Spawn, error) {
	if p == nil || p.compiled == nil {
		return nil, fmt.Errorf("%w: script not compiled", ErrInvalidPattern)
	}
	c := p.compiled.Clone()
	values := map[string]any{
		"frame":  in.Frame,
		"dt":     in.DT,
		"ex":     in.Shooter.Center.X,
		"ey":     in.Shooter.Center.Y,
		"etop":   in.Shooter.Top,
		"px":     in.Target.X,
		"py":     in.Target.Y,
		"odds":   in.Odds,
		"weapon": in.Weapon,
		"chance": chanceFunc(in.Rng, in.DT),
		"roll":   rollFunc(in.Rng),
	}
	for k, v := range values {
		if err := c.Set(k, v); err != nil {
			return nil, err
		}
	}
	if err := c.Run(); err != nil {
		return nil, err
	}

	raw := c.Get("spawns").Array()
	out := make([]Spawn, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: spawn %d is %T, want map", ErrInvalidPattern, i, item)
		}
		s := Spawn{
			X:      in.Shooter.Center.X,
			Y:      in.Shooter.Center.Y,
			Weapon: in.Weapon,
		}
		s.VX = number(m["vx"])
		s.VY = number(m["vy"])
		if v, ok := m["x"]; ok {
			s.X = number(v)
		}
		if v, ok := m["y"]; ok {
			s.Y = number(v)
		}
		if v, ok := m["angle"]; ok {
			s.Angle = number(v)
		}
		if w, ok := m["weapon"].(string); ok && w != "" {
			s.Weapon = w
		}
		out = append(out, s)
	}
	return out, nil
}

func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
