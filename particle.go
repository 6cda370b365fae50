package arcade

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

type particle struct {
	x, y    float64
	vx, vy  float64
	life    float64 // remaining seconds
	maxLife float64

	startScale, endScale, scale float64
	startAlpha, endAlpha, alpha float64
	startColor, endColor, color Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size; spawns beyond it are dropped. Defaults
	// to 128.
	MaxParticles int
	// EmitRate is the number of particles per second while the emitter is
	// started. Zero means the emitter only bursts through Explode.
	EmitRate float64
	Lifetime Range
	// Speed is in pixels per second; Angle is in radians.
	Speed Range
	Angle Range
	// Scale and alpha interpolate from Start to End over each lifetime. A
	// zero StartScale or StartAlpha range means 1.
	StartScale Range
	EndScale   Range
	StartAlpha Range
	EndAlpha   Range
	Gravity    Vec2
	StartColor Color
	EndColor   Color
	// Texture is drawn centered on each particle; nil draws WhitePixel, so
	// scale is the particle's size in pixels.
	Texture   *ebiten.Image
	BlendMode BlendMode
	// WorldSpace keeps particles where they were emitted instead of moving
	// with the emitter node.
	WorldSpace bool
	// Seed feeds the emitter's random source.
	Seed uint64
}

// ParticleEmitter simulates a fixed pool of particles on the CPU. Alive
// particles are packed at the front of the pool.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
	rng       *rand.Rand
	spawned   int

	// Emitter origin in world space, refreshed each step.
	worldX, worldY float64
}

func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = 128
	}
	if cfg.StartScale == (Range{}) {
		cfg.StartScale = Range{1, 1}
	}
	if cfg.StartAlpha == (Range{}) {
		cfg.StartAlpha = Range{1, 1}
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, cfg.MaxParticles),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xda3e39cb94b95bdb)),
	}
}

// NewParticleEmitter creates an emitter node. The emitter is stopped until
// Start or Explode is called.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{Name: name, Type: NodeTypeParticles, Emitter: newParticleEmitter(cfg)}
	nodeDefaults(n)
	return n
}

// Start begins continuous emission at EmitRate.
func (e *ParticleEmitter) Start() { e.active = true }

// Stop ends emission; alive particles live out their lifetimes.
func (e *ParticleEmitter) Stop() { e.active = false }

// Reset stops emission and kills every particle.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// IsActive reports whether the emitter is emitting continuously.
func (e *ParticleEmitter) IsActive() bool { return e.active }

// AliveCount returns the number of live particles.
func (e *ParticleEmitter) AliveCount() int { return e.alive }

// Spawned returns how many particles were ever emitted.
func (e *ParticleEmitter) Spawned() int { return e.spawned }

// Config returns the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig { return &e.config }

// Explode spawns up to count particles at (x, y) and returns how many fit in
// the pool. Coordinates are world space for a WorldSpace emitter and local
// to the emitter node otherwise.
func (e *ParticleEmitter) Explode(count int, x, y float64) int {
	n := 0
	for ; n < count && e.alive < len(e.particles); n++ {
		e.spawn(x, y)
	}
	return n
}

func (e *ParticleEmitter) update(dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := 1 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)
		p.color = Color{
			R: lerp(p.startColor.R, p.endColor.R, t),
			G: lerp(p.startColor.G, p.endColor.G, t),
			B: lerp(p.startColor.B, p.endColor.B, t),
			A: 1,
		}
		i++
	}

	if !e.active || e.config.EmitRate <= 0 {
		return
	}
	e.emitAccum += e.config.EmitRate * dt
	for e.emitAccum >= 1 {
		e.emitAccum--
		if e.alive < len(e.particles) {
			x, y := 0.0, 0.0
			if e.config.WorldSpace {
				x, y = e.worldX, e.worldY
			}
			e.spawn(x, y)
		}
	}
}

// spawn initialises the slot after the last alive particle.
func (e *ParticleEmitter) spawn(x, y float64) {
	cfg := &e.config
	p := &e.particles[e.alive]

	sin, cos := math.Sincos(cfg.Angle.Random(e.rng))
	speed := cfg.Speed.Random(e.rng)
	p.x, p.y = x, y
	p.vx, p.vy = cos*speed, sin*speed

	p.life = cfg.Lifetime.Random(e.rng)
	if p.life <= 0 {
		p.life = 1
	}
	p.maxLife = p.life

	p.startScale = cfg.StartScale.Random(e.rng)
	p.endScale = cfg.EndScale.Random(e.rng)
	p.scale = p.startScale
	p.startAlpha = cfg.StartAlpha.Random(e.rng)
	p.endAlpha = cfg.EndAlpha.Random(e.rng)
	p.alpha = p.startAlpha
	p.startColor, p.endColor = cfg.StartColor, cfg.EndColor
	p.color = cfg.StartColor

	e.alive++
	e.spawned++
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
