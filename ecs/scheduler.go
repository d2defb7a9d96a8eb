package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in the order they were added. Each system sees the
// mutations of the ones before it in the same frame.
type Scheduler struct {
	systems []System
	halted  func(w *World) bool
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// HaltWhen stops the remaining systems of a frame once cond reports true.
func (s *Scheduler) HaltWhen(cond func(w *World) bool) {
	s.halted = cond
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.halted != nil && s.halted(w) {
			return
		}
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
