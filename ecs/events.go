package ecs

// EventType names something the simulation wants the presentation layer to
// know about. The core never plays sounds or draws; it only emits these.
type EventType string

const (
	EventEnemyHit          EventType = "enemy_hit"
	EventEnemyKilled       EventType = "enemy_killed"
	EventCoinCollected     EventType = "coin_collected"
	EventHeartCollected    EventType = "heart_collected"
	EventPowerUpCollected  EventType = "power_up_collected"
	EventPlayerHit         EventType = "player_hit"
	EventPlayerShot        EventType = "player_shot"
	EventShieldRaised      EventType = "shield_raised"
	EventGrenadeThrown     EventType = "grenade_thrown"
	EventJump              EventType = "jump"
	EventTierUp            EventType = "tier_up"
	EventLevelComplete     EventType = "level_complete"
	EventRespawn           EventType = "respawn"
	EventGameOver          EventType = "game_over"
	EventGameComplete      EventType = "game_complete"
	EventLevelLoaded       EventType = "level_loaded"
	EventBlockDestroyed    EventType = "block_destroyed"
	EventEnemyBulletFired  EventType = "enemy_bullet_fired"
	EventProjectileExpired EventType = "projectile_expired"
)

type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// ScoreData accompanies kills and coin pickups.
type ScoreData struct {
	Points int
	Score  int
}

// LivesData accompanies hits, hearts and respawns.
type LivesData struct {
	Lives int
}

// LevelData accompanies level transitions.
type LevelData struct {
	Index int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is Push without building the Event by hand.
func (q *EventQueue) Emit(t EventType, e Entity, data any) {
	q.Push(Event{Type: t, Entity: e, Data: data})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Has reports whether an event of type t is pending.
func (q *EventQueue) Has(t EventType) bool {
	if q == nil {
		return false
	}
	for _, evt := range q.items {
		if evt.Type == t {
			return true
		}
	}
	return false
}
