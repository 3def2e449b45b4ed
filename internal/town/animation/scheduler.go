// Package animation advances every active animation player once per frame.
package animation

// Player is anything advanced by frame time, typically an anim.Mixer.
type Player interface {
	Update(dt float32)
}

// Scheduler holds registered players. Players are never removed.
type Scheduler struct {
	players []Player
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register adds p; it is updated from the next Tick on.
func (s *Scheduler) Register(p Player) {
	if p != nil {
		s.players = append(s.players, p)
	}
}

// Tick updates every player in registration order. dt is in seconds.
func (s *Scheduler) Tick(dt float32) {
	for _, p := range s.players {
		p.Update(dt)
	}
}

// Len returns the number of registered players.
func (s *Scheduler) Len() int {
	return len(s.players)
}
