package replay

// Speeds is the playback speed cycle.
var Speeds = []float64{0.5, 1, 2}

// Player re-issues recorded actions as playback time passes.
type Player struct {
	actions  []Action
	apply    func(Action)
	onDone   func()
	speedIdx int
	elapsed  float64
	cursor   int
	playing  bool
	duration float64
}

// NewPlayer prepares a playback of actions. duration is the length of the
// original window; a shorter value is raised to the last action's time.
func NewPlayer(actions []Action, duration float64, apply func(Action)) (*Player, error) {
	if len(actions) == 0 {
		return nil, ErrEmpty
	}
	p := &Player{
		actions:  append([]Action(nil), actions...),
		apply:    apply,
		speedIdx: 1,
		duration: max(duration, actions[len(actions)-1].T),
	}
	return p, nil
}

// OnDone sets a callback run once when playback finishes.
func (p *Player) OnDone(fn func()) { p.onDone = fn }

// Play restarts playback from the beginning.
func (p *Player) Play() {
	p.elapsed = 0
	p.cursor = 0
	p.playing = true
}

// Playing reports whether playback is running.
func (p *Player) Playing() bool { return p.playing }

// Speed returns the current multiplier.
func (p *Player) Speed() float64 { return Speeds[p.speedIdx] }

// CycleSpeed moves to the next multiplier and returns it.
func (p *Player) CycleSpeed() float64 {
	p.speedIdx = (p.speedIdx + 1) % len(Speeds)
	return p.Speed()
}

// Played returns how many actions have been applied.
func (p *Player) Played() int { return p.cursor }

// Len returns the number of actions in the recording.
func (p *Player) Len() int { return len(p.actions) }

// Progress returns playback position in [0, 1].
func (p *Player) Progress() float64 {
	if p.duration <= 0 {
		if p.cursor == len(p.actions) {
			return 1
		}
		return 0
	}
	return min(p.elapsed/p.duration, 1)
}

// Done reports whether every action has been applied and the window has
// elapsed.
func (p *Player) Done() bool {
	return !p.playing && p.cursor == len(p.actions)
}

// Update advances playback by dt scaled by the current speed.
func (p *Player) Update(dt float64) {
	if !p.playing {
		return
	}
	p.elapsed += dt * p.Speed()
	for p.cursor < len(p.actions) && p.actions[p.cursor].T <= p.elapsed {
		a := p.actions[p.cursor]
		p.cursor++
		if p.apply != nil {
			p.apply(a)
		}
	}
	if p.cursor == len(p.actions) && p.elapsed >= p.duration {
		p.playing = false
		if p.onDone != nil {
			p.onDone()
		}
	}
}
