package ecs

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

// BodyType selects how Chipmunk integrates a body.
type BodyType int

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

// Collision tags route contacts to handlers.
const (
	TagNone cp.CollisionType = iota
	TagPlayer
	TagWall
	TagMovingPlatform
	TagItem
	TagBlock
	TagGrenade
	TagPickup
)

// groundTags are the surfaces a player can stand on.
var groundTags = []cp.CollisionType{TagWall, TagMovingPlatform, TagItem, TagBlock}

// passThrough pairs never push each other. Pickups are collected by overlap
// and the player's own grenades leave from inside its box.
var passThrough = [][2]cp.CollisionType{
	{TagPlayer, TagPickup},
	{TagPlayer, TagGrenade},
}

var ErrBodyExists = errors.New("ecs: entity already has a body")

// BodyOptions describe one box body. Nil Gravity or Damping fall back to the
// space defaults; a zero max speed leaves that axis unclamped.
type BodyOptions struct {
	Type          BodyType
	Width         float64
	Height        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	Tag           cp.CollisionType
	Gravity       *cp.Vector
	Damping       *float64
	MaxHorizontal float64
	MaxVertical   float64
}

type bodyRecord struct {
	entity   Entity
	body     *cp.Body
	shape    *cp.Shape
	opts     BodyOptions
	grounded bool
}

// CollisionFunc receives the two entities of a contact, ordered as the tags
// passed to OnCollision.
type CollisionFunc func(a, b Entity)

type pendingContact struct {
	fn   CollisionFunc
	a, b Entity
}

// PhysicsWorld owns the Chipmunk space and keeps one body per entity.
type PhysicsWorld struct {
	space    *cp.Space
	bodies   map[Entity]*bodyRecord
	shapes   map[*cp.Shape]*bodyRecord
	handlers map[[2]cp.CollisionType]*cp.CollisionHandler
	pending  []pendingContact
	stepping bool
}

// NewPhysicsWorld creates a space with y-up gravity.
func NewPhysicsWorld(gravity, damping float64, iterations int) *PhysicsWorld {
	space := cp.NewSpace()
	if iterations <= 0 {
		iterations = 20
	}
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	space.SetDamping(damping)

	pw := &PhysicsWorld{
		space:    space,
		bodies:   make(map[Entity]*bodyRecord),
		shapes:   make(map[*cp.Shape]*bodyRecord),
		handlers: make(map[[2]cp.CollisionType]*cp.CollisionHandler),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) handler(a, b cp.CollisionType) *cp.CollisionHandler {
	key := [2]cp.CollisionType{a, b}
	if h, ok := pw.handlers[key]; ok {
		return h
	}
	h := pw.space.NewCollisionHandler(a, b)
	h.UserData = pw
	pw.handlers[key] = h
	return h
}

func ignoreCollision(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	return false
}

func (pw *PhysicsWorld) setupHandlers() {
	for _, pair := range passThrough {
		pw.handler(pair[0], pair[1]).BeginFunc = ignoreCollision
	}
	for _, tag := range groundTags {
		h := pw.handler(TagPlayer, tag)
		h.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*PhysicsWorld)
			if !ok || world == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			rec, okA := world.shapes[shapeA]
			playerIsA := okA && rec.opts.Tag == TagPlayer
			if !playerIsA {
				rec, ok = world.shapes[shapeB]
				if !ok || rec.opts.Tag != TagPlayer {
					return true
				}
			}
			n := arb.Normal()
			if !playerIsA {
				n = n.Neg()
			}
			// n points from the player into the other shape; y is up.
			if n.Y < -0.5 {
				rec.grounded = true
			}
			return true
		}
	}
}

// AddBody creates a box body centred on (x, y).
func (pw *PhysicsWorld) AddBody(e Entity, x, y float64, opts BodyOptions) (*cp.Body, error) {
	if pw == nil {
		return nil, errors.New("ecs: nil physics world")
	}
	if _, ok := pw.bodies[e]; ok {
		return nil, ErrBodyExists
	}

	var body *cp.Body
	var shape *cp.Shape
	switch opts.Type {
	case BodyStatic:
		body = pw.space.StaticBody
		bb := cp.BB{
			L: x - opts.Width/2,
			B: y - opts.Height/2,
			R: x + opts.Width/2,
			T: y + opts.Height/2,
		}
		shape = cp.NewBox2(body, bb, 0)
	case BodyKinematic:
		body = cp.NewKinematicBody()
		body.SetPosition(cp.Vector{X: x, Y: y})
		shape = cp.NewBox(body, opts.Width, opts.Height, 0)
	default:
		mass := opts.Mass
		if mass <= 0 {
			mass = 1
		}
		// Boxes never rotate in a platformer.
		body = cp.NewBody(mass, math.Inf(1))
		body.SetPosition(cp.Vector{X: x, Y: y})
		shape = cp.NewBox(body, opts.Width, opts.Height, 0)
	}
	shape.SetFriction(opts.Friction)
	shape.SetElasticity(opts.Elasticity)
	shape.SetCollisionType(opts.Tag)

	rec := &bodyRecord{entity: e, body: body, shape: shape, opts: opts}
	if opts.Type == BodyDynamic {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			if rec.opts.Gravity != nil {
				gravity = *rec.opts.Gravity
			}
			if rec.opts.Damping != nil {
				damping = math.Pow(*rec.opts.Damping, dt)
			}
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
			b.SetVelocityVector(clampVelocity(b.Velocity(), rec.opts.MaxHorizontal, rec.opts.MaxVertical))
		})
	}

	if body != pw.space.StaticBody {
		pw.space.AddBody(body)
	}
	pw.space.AddShape(shape)
	pw.bodies[e] = rec
	pw.shapes[shape] = rec
	return body, nil
}

func clampVelocity(v cp.Vector, maxX, maxY float64) cp.Vector {
	if maxX > 0 {
		v.X = math.Max(-maxX, math.Min(maxX, v.X))
	}
	if maxY > 0 {
		v.Y = math.Max(-maxY, math.Min(maxY, v.Y))
	}
	return v
}

// RemoveBody drops e's body and shape. It reports false if e had none.
func (pw *PhysicsWorld) RemoveBody(e Entity) bool {
	if pw == nil {
		return false
	}
	rec, ok := pw.bodies[e]
	if !ok {
		return false
	}
	delete(pw.bodies, e)
	delete(pw.shapes, rec.shape)
	pw.space.RemoveShape(rec.shape)
	if rec.body != pw.space.StaticBody {
		pw.space.RemoveBody(rec.body)
	}
	return true
}

func (pw *PhysicsWorld) HasBody(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// Type reports how e's body is integrated.
func (pw *PhysicsWorld) Type(e Entity) (BodyType, bool) {
	rec, ok := pw.record(e)
	if !ok {
		return BodyStatic, false
	}
	return rec.opts.Type, true
}

func (pw *PhysicsWorld) BodyCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}

func (pw *PhysicsWorld) record(e Entity) (*bodyRecord, bool) {
	if pw == nil {
		return nil, false
	}
	rec, ok := pw.bodies[e]
	return rec, ok
}

// Position returns the centre of e's body. Static boxes report the centre of
// their bounding box.
func (pw *PhysicsWorld) Position(e Entity) (cp.Vector, bool) {
	rec, ok := pw.record(e)
	if !ok {
		return cp.Vector{}, false
	}
	if rec.opts.Type == BodyStatic {
		return rec.shape.BB().Center(), true
	}
	return rec.body.Position(), true
}

func (pw *PhysicsWorld) Velocity(e Entity) (cp.Vector, bool) {
	rec, ok := pw.record(e)
	if !ok || rec.opts.Type == BodyStatic {
		return cp.Vector{}, false
	}
	return rec.body.Velocity(), true
}

// SetPosition teleports a dynamic or kinematic body.
func (pw *PhysicsWorld) SetPosition(e Entity, x, y float64) {
	rec, ok := pw.record(e)
	if !ok || rec.opts.Type == BodyStatic {
		return
	}
	rec.body.SetPosition(cp.Vector{X: x, Y: y})
}

func (pw *PhysicsWorld) ApplyForce(e Entity, f cp.Vector) {
	rec, ok := pw.record(e)
	if !ok || rec.opts.Type != BodyDynamic {
		return
	}
	rec.body.ApplyForceAtLocalPoint(f, cp.Vector{})
}

func (pw *PhysicsWorld) ApplyImpulse(e Entity, j cp.Vector) {
	rec, ok := pw.record(e)
	if !ok || rec.opts.Type != BodyDynamic {
		return
	}
	rec.body.ApplyImpulseAtLocalPoint(j, cp.Vector{})
}

func (pw *PhysicsWorld) SetVelocity(e Entity, v cp.Vector) {
	rec, ok := pw.record(e)
	if !ok || rec.opts.Type == BodyStatic {
		return
	}
	rec.body.SetVelocityVector(v)
}

func (pw *PhysicsWorld) SetFriction(e Entity, friction float64) {
	rec, ok := pw.record(e)
	if !ok {
		return
	}
	rec.opts.Friction = friction
	rec.shape.SetFriction(friction)
}

func (pw *PhysicsWorld) Friction(e Entity) float64 {
	rec, ok := pw.record(e)
	if !ok {
		return 0
	}
	return rec.opts.Friction
}

// SetGravity overrides e's gravity; nil restores the space gravity.
func (pw *PhysicsWorld) SetGravity(e Entity, g *cp.Vector) {
	if rec, ok := pw.record(e); ok {
		rec.opts.Gravity = g
	}
}

// SetDamping overrides e's per-second damping; nil restores the space value.
func (pw *PhysicsWorld) SetDamping(e Entity, d *float64) {
	if rec, ok := pw.record(e); ok {
		rec.opts.Damping = d
	}
}

func (pw *PhysicsWorld) SetMaxVelocity(e Entity, horizontal, vertical float64) {
	if rec, ok := pw.record(e); ok {
		rec.opts.MaxHorizontal = horizontal
		rec.opts.MaxVertical = vertical
	}
}

// IsGrounded reports whether a player-tagged body rested on a surface during
// the last step.
func (pw *PhysicsWorld) IsGrounded(e Entity) bool {
	rec, ok := pw.record(e)
	return ok && rec.grounded
}

// OnCollision calls fn once when shapes tagged a and b start touching. Calls
// are queued during the step and run after it, so fn may remove bodies.
func (pw *PhysicsWorld) OnCollision(a, b cp.CollisionType, fn CollisionFunc) {
	if pw == nil || fn == nil {
		return
	}
	h := pw.handler(a, b)
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		recA, okA := world.shapes[shapeA]
		recB, okB := world.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		if recA.opts.Tag != a {
			recA, recB = recB, recA
		}
		world.pending = append(world.pending, pendingContact{fn: fn, a: recA.entity, b: recB.entity})
		return true
	}
}

// Step advances the simulation by dt seconds and then runs queued collision
// callbacks.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 || pw.stepping {
		return
	}
	for _, rec := range pw.bodies {
		rec.grounded = false
	}
	pw.stepping = true
	pw.space.Step(dt)
	pw.stepping = false

	pending := pw.pending
	pw.pending = nil
	for _, c := range pending {
		if !pw.HasBody(c.a) || !pw.HasBody(c.b) {
			continue
		}
		c.fn(c.a, c.b)
	}
}
