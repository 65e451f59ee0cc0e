package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tilt-maze/internal/bodymesh"
	"tilt-maze/internal/game"
	"tilt-maze/internal/mathx"
	"tilt-maze/internal/primitives"
	"tilt-maze/internal/stage"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	axisLength     = 20
)

// PreviewBand is the height kept free under the 3D view for the pose preview panel.
const PreviewBand = 240

var (
	background = rl.NewColor(16, 16, 20, 255)
	wireColor  = rl.NewColor(0, 255, 0, 255)
)

// Scene renders a session into an offscreen target once per tick; Draw blits it to the window.
// It implements game.Surface.
type Scene struct {
	Camera rl.Camera3D
	// ReserveBand shrinks the 3D view by PreviewBand pixels (pose input modes).
	ReserveBand bool

	def        stage.Def
	prims      *primitives.Registry
	debug      bool
	target     rl.RenderTexture2D
	targetW    int32
	targetH    int32
	cursorFree bool
}

// New returns a scene using the stage's camera and light.
func New(def stage.Def) *Scene {
	s := &Scene{prims: primitives.NewRegistry()}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Projection = rl.CameraPerspective
	s.SetStage(def)
	return s
}

// SetStage switches to another stage's camera, light and decor. The debug state is kept.
func (s *Scene) SetStage(def stage.Def) {
	s.def = def
	s.Camera.Fovy = def.Camera.Fovy
	if s.Camera.Fovy == 0 {
		s.Camera.Fovy = 45
	}
	s.prims.SetAmbient(def.Light.Ambient)
	s.SetDebug(s.debug)
}

func vec(a [3]float32) rl.Vector3 {
	return rl.NewVector3(a[0], a[1], a[2])
}

// SetDebug switches between the play camera and the debug camera (free fly, wireframes, axes).
func (s *Scene) SetDebug(on bool) {
	s.debug = on
	if on {
		s.Camera.Position = vec(s.def.Camera.DebugPosition)
	} else {
		s.Camera.Position = vec(s.def.Camera.Position)
		s.Camera.Target = rl.NewVector3(0, 0, 0)
		if s.cursorFree {
			rl.EnableCursor()
			s.cursorFree = false
		}
	}
}

// Update runs camera logic once per frame. In debug mode the camera flies freely (mouse and WASD)
// unless captureInput is false (console open).
func (s *Scene) Update(captureInput bool) {
	if !s.debug || !captureInput {
		return
	}
	if !s.cursorFree {
		rl.DisableCursor()
		s.cursorFree = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// ViewSize is the size of the 3D view for the current window.
func (s *Scene) ViewSize() (int32, int32) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if s.ReserveBand {
		h -= PreviewBand
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (s *Scene) ensureTarget() {
	w, h := s.ViewSize()
	if w == s.targetW && h == s.targetH {
		return
	}
	if s.targetW != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(w, h)
	s.targetW, s.targetH = w, h
}

// Render draws the session's bodies into the offscreen target.
func (s *Scene) Render(sess *game.Session) {
	s.ensureTarget()
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(background)
	rl.BeginMode3D(s.Camera)

	cam := s.Camera.Position
	s.prims.SetView([3]float32{cam.X, cam.Y, cam.Z}, s.def.Light.Position)

	for _, d := range s.def.Decor {
		t := primitives.Transform{Position: d.Position, Rotation: [4]float32{0, 0, 0, 1}, Scale: d.Size}
		s.prims.Draw(d.Type, t, hexColor(d.Color))
	}
	for _, m := range sess.Meshes {
		s.drawMesh(m)
	}
	if s.debug {
		drawEditorGrid()
	}

	rl.EndMode3D()
	rl.EndTextureMode()
}

func (s *Scene) drawMesh(m bodymesh.Mesh) {
	c := hexColor(m.Color)
	for _, p := range m.Parts {
		pos, rot := m.World(p)
		t := transform(pos, rot, p.Scale)
		if s.debug {
			s.prims.DrawWires(p.Primitive, t, wireColor)
			continue
		}
		s.prims.Draw(p.Primitive, t, c)
	}
}

func transform(pos mathx.Vec3, rot mathx.Quat, scale mathx.Vec3) primitives.Transform {
	return primitives.Transform{
		Position: pos.Array(),
		Rotation: [4]float32{rot.X, rot.Y, rot.Z, rot.W},
		Scale:    scale.Array(),
	}
}

// Draw blits the last rendered frame to the top of the window.
func (s *Scene) Draw() {
	if s.targetW == 0 {
		return
	}
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(s.targetW), -float32(s.targetH))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

// Close releases GPU resources.
func (s *Scene) Close() {
	if s.targetW != 0 {
		rl.UnloadRenderTexture(s.target)
		s.targetW, s.targetH = 0, 0
	}
}

func hexColor(rgb uint32) rl.Color {
	if rgb == 0 {
		return rl.NewColor(128, 128, 128, 255)
	}
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255)
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and the three axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines from the origin (X=red, Y=green, Z=blue)
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(axisLength, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, axisLength, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, axisLength), rl.NewColor(80, 80, 220, axisLineAlpha))
}
