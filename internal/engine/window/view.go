package window

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/motioncore/internal/arena"
	"github.com/Faultbox/motioncore/internal/motion"
	"github.com/Faultbox/motioncore/pkg/math"
)

// Color is an RGB triple in [0,1].
type Color [3]float32

var (
	background  = Color{0.1, 0.1, 0.15}
	solidColor  = Color{0.35, 0.35, 0.4}
	propColor   = Color{0.6, 0.45, 0.25}
	debrisColor = Color{0.45, 0.3, 0.2}
	facingColor = Color{1, 1, 1}
)

var stateColors = map[motion.State]Color{
	motion.Idle:          {0.8, 0.8, 0.8},
	motion.Running:       {0.3, 0.8, 0.3},
	motion.Jumping:       {0.3, 0.6, 1.0},
	motion.Dashing:       {1.0, 0.8, 0.2},
	motion.Crouching:     {0.6, 0.3, 0.8},
	motion.Sliding:       {0.8, 0.3, 0.8},
	motion.LedgeGrabbing: {1.0, 0.5, 0.1},
	motion.Attacking:     {0.9, 0.2, 0.2},
}

// StateColor is the tint used for the avatar in s.
func StateColor(s motion.State) Color {
	if c, ok := stateColors[s]; ok {
		return c
	}
	return Color{1, 0, 1}
}

// TopDown draws the arena from above with scissored clears, one rectangle
// per box. Height is shown by brightness.
type TopDown struct {
	// PixelsPerMeter is the zoom.
	PixelsPerMeter float32
	width, height  int
}

// NewTopDown creates a view for a width x height framebuffer.
func NewTopDown(width, height int) *TopDown {
	return &TopDown{PixelsPerMeter: 24, width: width, height: height}
}

// Resize updates the framebuffer size.
func (v *TopDown) Resize(width, height int) {
	v.width, v.height = width, height
}

// Draw renders one frame centred on the avatar's body.
func (v *TopDown) Draw(world *arena.World, snap motion.Snapshot) {
	gl.Viewport(0, 0, int32(v.width), int32(v.height))
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(background[0], background[1], background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.SCISSOR_TEST)

	body := world.Body()
	focus := body.Position()
	for _, s := range world.Solids() {
		v.fill(s.Box, focus, shade(solidColor, s.Box.Max.Y-focus.Y))
	}
	for _, p := range world.Props() {
		if p.Removed() {
			continue
		}
		c := propColor
		if p.Debris() {
			c = debrisColor
		}
		v.fill(p.Box(), focus, c)
	}

	v.fill(body.Box(), focus, StateColor(snap.State))

	// Facing marker on the body's rim.
	tip := focus.Add(math.Forward(snap.Yaw).Scale(body.Radius()))
	v.fill(arena.BoxAround(tip, math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}), focus, facingColor)
}

// fill clears the screen rectangle covered by box seen from above. World
// -Z is screen up.
func (v *TopDown) fill(box arena.Box, focus math.Vec3, c Color) {
	cx, cy := float32(v.width)/2, float32(v.height)/2
	x0 := cx + (box.Min.X-focus.X)*v.PixelsPerMeter
	x1 := cx + (box.Max.X-focus.X)*v.PixelsPerMeter
	y0 := cy - (box.Max.Z-focus.Z)*v.PixelsPerMeter
	y1 := cy - (box.Min.Z-focus.Z)*v.PixelsPerMeter

	x0, x1 = math.Clamp(x0, 0, float32(v.width)), math.Clamp(x1, 0, float32(v.width))
	y0, y1 = math.Clamp(y0, 0, float32(v.height)), math.Clamp(y1, 0, float32(v.height))
	if x1-x0 < 1 || y1-y0 < 1 {
		return
	}

	// GL scissor origin is bottom-left.
	gl.Scissor(int32(x0), int32(float32(v.height)-y1), int32(x1-x0), int32(y1-y0))
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// shade brightens boxes whose top is above the avatar's feet.
func shade(c Color, rel float32) Color {
	k := math.Clamp(1+rel*0.1, 0.5, 1.5)
	return Color{math.Clamp(c[0]*k, 0, 1), math.Clamp(c[1]*k, 0, 1), math.Clamp(c[2]*k, 0, 1)}
}
