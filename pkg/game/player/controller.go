// Package player converts held input flags into avatar kinematics.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Keys are the input-intent flags currently held for the avatar.
type Keys struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Sprint   bool
	Interact bool
	Action   bool
	Look     bool // drag button held
}

// Settings are the kinematic constants of the controller.
type Settings struct {
	Start            mgl64.Vec3
	MoveSpeed        float64
	SprintMultiplier float64
	JumpVelocity     float64
	Gravity          float64
	GroundY          float64
	LookSensitivity  float64 // radians per pointer pixel
	CameraOffset     mgl64.Vec3
}

// DefaultSettings returns the stock avatar tuning.
func DefaultSettings() Settings {
	return Settings{
		Start:            mgl64.Vec3{0, 2, 0},
		MoveSpeed:        5,
		SprintMultiplier: 2,
		JumpVelocity:     10,
		Gravity:          20,
		GroundY:          2,
		LookSensitivity:  0.002,
		CameraOffset:     mgl64.Vec3{0, 2, 8},
	}
}

// maxPitch is the pitch clamp, ±90°.
const maxPitch = math.Pi / 2

// Controller owns the avatar position, orientation and velocity.
type Controller struct {
	Keys Keys

	settings Settings
	position mgl64.Vec3
	velocity mgl64.Vec3
	yaw      float64
	pitch    float64
	grounded bool
}

// New creates a controller at the configured start position.
func New(s Settings) *Controller {
	c := &Controller{settings: s}
	c.Reset()
	return c
}

// Reset puts the avatar back at the start position with zero rotation and velocity.
func (c *Controller) Reset() {
	c.position = c.settings.Start
	c.velocity = mgl64.Vec3{}
	c.yaw, c.pitch = 0, 0
	c.grounded = c.position.Y() <= c.settings.GroundY
	c.Keys = Keys{}
}

// Tick advances the kinematics by dt seconds.
func (c *Controller) Tick(dt float64) {
	var dir mgl64.Vec3
	if c.Keys.Forward {
		dir[2] -= 1
	}
	if c.Keys.Backward {
		dir[2] += 1
	}
	if c.Keys.Left {
		dir[0] -= 1
	}
	if c.Keys.Right {
		dir[0] += 1
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	speed := c.settings.MoveSpeed
	if c.Keys.Sprint {
		speed *= c.settings.SprintMultiplier
	}
	c.position[0] += dir.X() * speed * dt
	c.position[2] += dir.Z() * speed * dt

	if c.Keys.Jump && c.grounded {
		c.velocity[1] = c.settings.JumpVelocity
		c.grounded = false
	}

	c.velocity[1] -= c.settings.Gravity * dt
	c.position[1] += c.velocity.Y() * dt

	if c.position.Y() < c.settings.GroundY {
		c.position[1] = c.settings.GroundY
		c.velocity[1] = 0
		c.grounded = true
	}
}

// Rotate applies a pointer drag of (dx, dy) pixels. Pitch is clamped to ±90°.
func (c *Controller) Rotate(dx, dy float64) {
	c.yaw -= dx * c.settings.LookSensitivity
	c.pitch -= dy * c.settings.LookSensitivity
	c.pitch = mgl64.Clamp(c.pitch, -maxPitch, maxPitch)
}

// Position returns a copy of the avatar position.
func (c *Controller) Position() mgl64.Vec3 {
	return c.position
}

// Velocity returns a copy of the avatar velocity.
func (c *Controller) Velocity() mgl64.Vec3 {
	return c.velocity
}

// Grounded reports whether the avatar is standing on the ground plane.
func (c *Controller) Grounded() bool {
	return c.grounded
}

// Rotation returns yaw and pitch in radians.
func (c *Controller) Rotation() (yaw, pitch float64) {
	return c.yaw, c.pitch
}

// Forward returns the unit facing direction on the ground plane derived from yaw.
func (c *Controller) Forward() mgl64.Vec3 {
	return mgl64.Rotate3DY(c.yaw).Mul3x1(mgl64.Vec3{0, 0, -1})
}

// CameraPosition returns the third-person camera position behind the avatar.
func (c *Controller) CameraPosition() mgl64.Vec3 {
	return c.position.Add(mgl64.Rotate3DY(c.yaw).Mul3x1(c.settings.CameraOffset))
}

// SetPosition moves the avatar. Velocity is kept.
func (c *Controller) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.grounded = p.Y() <= c.settings.GroundY
}

// SetRotation sets yaw and pitch; pitch is clamped.
func (c *Controller) SetRotation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = mgl64.Clamp(pitch, -maxPitch, maxPitch)
}

// Settings returns the controller tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}
