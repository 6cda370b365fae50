package arcade

import (
	"math/rand/v2"
	"testing"

	"github.com/tanema/gween/ease"
)

func testCamera(w, h float64) *Camera {
	return newCamera(Rect{Width: w, Height: h}, rand.New(rand.NewPCG(1, 2)))
}

func TestCameraDefaultIsIdentity(t *testing.T) {
	cam := testCamera(800, 600)
	sx, sy := cam.WorldToScreen(10, 20)
	assertNear(t, "sx", sx, 10)
	assertNear(t, "sy", sy, 20)
}

func TestCameraScreenWorldRoundtrip(t *testing.T) {
	cam := testCamera(800, 600)
	cam.X, cam.Y = 300, -40
	cam.Zoom = 2.5
	cam.Rotation = 0.4

	sx, sy := cam.WorldToScreen(123, 456)
	wx, wy := cam.ScreenToWorld(sx, sy)
	assertNear(t, "wx", wx, 123)
	assertNear(t, "wy", wy, 456)
}

func TestCameraFieldWriteInvalidatesView(t *testing.T) {
	cam := testCamera(100, 100)
	cam.WorldToScreen(0, 0)
	cam.Zoom = 2
	sx, _ := cam.WorldToScreen(60, 50)
	assertNear(t, "sx", sx, 70)
}

func TestCameraFollowSnaps(t *testing.T) {
	cam := testCamera(200, 200)
	target := NewContainer("hero")
	target.SetPosition(500, 300)
	updateWorldTransform(target, identityTransform, 1, false)

	cam.Follow(target, 0, 0, 1)
	cam.update(1.0 / 60)
	assertNear(t, "X", cam.X, 500)
	assertNear(t, "Y", cam.Y, 300)

	target.Dispose()
	cam.update(1.0 / 60)
	if cam.Following() != nil {
		t.Error("camera should drop a disposed target")
	}
}

func TestCameraBoundsClamp(t *testing.T) {
	cam := testCamera(200, 100)
	cam.SetBounds(Rect{Width: 1000, Height: 1000})
	cam.CenterOn(-500, 5000)
	assertNear(t, "X", cam.X, 100)
	assertNear(t, "Y", cam.Y, 950)
}

func TestCameraScrollTo(t *testing.T) {
	cam := testCamera(200, 200)
	cam.ScrollTo(400, 100, 0.5, ease.InOutQuad)
	for range 40 {
		cam.update(1.0 / 60)
	}
	assertNear(t, "X", cam.X, 400)
	assertNear(t, "Y", cam.Y, 100)
}

func TestCameraShakeEnds(t *testing.T) {
	cam := testCamera(200, 200)
	cam.Shake(0.2, 0.05)
	cam.update(1.0 / 60)
	if !cam.Shaking() {
		t.Fatal("Shaking = false right after Shake")
	}
	dx, dy := cam.ShakeOffset()
	if dx < -10 || dx > 10 || dy < -10 || dy > 10 {
		t.Errorf("offset = (%v, %v), want within 10px", dx, dy)
	}
	for range 20 {
		cam.update(1.0 / 60)
	}
	if cam.Shaking() {
		t.Error("still shaking after duration")
	}
	if dx, dy := cam.ShakeOffset(); dx != 0 || dy != 0 {
		t.Errorf("offset after shake = (%v, %v), want 0", dx, dy)
	}
}

func TestCameraFlashAndFade(t *testing.T) {
	cam := testCamera(200, 200)
	cam.Flash(0.5, ColorWhite)
	assertNear(t, "flash start", cam.FlashAlpha(), 1)
	cam.update(0.25)
	assertNear(t, "flash mid", cam.FlashAlpha(), 0.5)
	cam.update(0.5)
	assertNear(t, "flash end", cam.FlashAlpha(), 0)

	done := false
	cam.Fade(1, ColorBlack, func() { done = true })
	cam.update(2)
	if !done {
		t.Error("fade onComplete not called")
	}
	assertNear(t, "fade held", cam.FadeAlpha(), 1)
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := testCamera(200, 100)
	cam.CenterOn(0, 0)
	cam.SetZoom(2)
	b := cam.VisibleBounds()
	assertNear(t, "X", b.X, -50)
	assertNear(t, "Width", b.Width, 100)
	assertNear(t, "Height", b.Height, 50)
}
