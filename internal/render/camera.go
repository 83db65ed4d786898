package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-fly camera for the demo.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // degrees, -90 looks down -Z
	Pitch    float32 // degrees

	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

// NewCamera creates a camera at the given position.
func NewCamera(width, height int, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		Pitch:       -15,
		FOV:         60,
		AspectRatio: float32(width) / float32(height),
		NearPlane:   0.1,
		FarPlane:    1000,
	}
}

// Front returns the normalized view direction.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// ViewMatrix returns the current view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the current projection transform.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Move translates the camera along its view plane. forward/right/up are
// signed amounts in world units.
func (c *Camera) Move(forward, right, up float32) {
	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	rightDir := flat.Cross(mgl32.Vec3{0, 1, 0})
	c.Position = c.Position.Add(flat.Mul(forward)).Add(rightDir.Mul(right))
	c.Position = c.Position.Add(mgl32.Vec3{0, up, 0})
}

// Look applies a mouse delta to yaw/pitch, clamping pitch to avoid flips.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx
	c.Pitch -= dy
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// SetViewport updates the aspect ratio after a window resize.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}
