package physics

import (
	"math"

	"github.com/phanxgames/arcade"
)

// VelocityFromAngle returns a velocity of the given speed along angle
// (radians, 0 = +X).
func VelocityFromAngle(angle, speed float64) arcade.Vec2 {
	sin, cos := math.Sincos(angle)
	return arcade.Vec2{X: cos * speed, Y: sin * speed}
}

// SetVelocityFromAngle points b along angle at speed.
func SetVelocityFromAngle(b *Body, angle, speed float64) {
	b.Velocity = VelocityFromAngle(angle, speed)
}

// MoveTowards sets b's velocity toward (x, y) at speed and returns the angle.
func MoveTowards(b *Body, x, y, speed float64) float64 {
	p := b.Position()
	angle := math.Atan2(y-p.Y, x-p.X)
	SetVelocityFromAngle(b, angle, speed)
	return angle
}

// Distance returns the distance between two body centres.
func Distance(a, b *Body) float64 {
	return b.Position().Sub(a.Position()).Len()
}

// AngleBetween returns the angle from a's centre to b's.
func AngleBetween(a, b *Body) float64 {
	d := b.Position().Sub(a.Position())
	return math.Atan2(d.Y, d.X)
}
