// Package primitives draws unit meshes (cube, sphere, cylinder, plane) placed by a transform,
// all lit by one shared directional-light shader.
package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Primitive names understood by Draw. All are unit sized and centered on the origin.
const (
	Cube     = "cube"
	Sphere   = "sphere"
	Cylinder = "cylinder"
	Plane    = "plane"
)

const (
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 32

	shininess     = float32(32)
	specularLevel = float32(0.25)
)

// Transform places a unit primitive in the world.
type Transform struct {
	Position [3]float32
	Rotation [4]float32 // quaternion x, y, z, w
	Scale    [3]float32
}

// mesh is one generated primitive. pivot moves raylib's mesh origin to the primitive's center.
type mesh struct {
	mesh  rl.Mesh
	pivot rl.Matrix
}

// lighting is the shared shader and its uniform locations, looked up once.
type lighting struct {
	shader rl.Shader
	valid  bool

	eye, light, sky, ground int32
	shine, specular         int32
}

// Registry owns GPU meshes and materials. Everything is created on first use, after the
// window's GL context exists.
type Registry struct {
	meshes map[string]mesh
	lit    *lighting
	solid  rl.Material
	wire   rl.Material
	ready  bool

	eye      [3]float32
	lightDir [3]float32
	sky      [3]float32
	ground   [3]float32
}

func NewRegistry() *Registry {
	r := &Registry{
		meshes:   make(map[string]mesh),
		lightDir: [3]float32{0, 20, 10},
	}
	r.SetAmbient(0x707070)
	return r
}

// SetView sets the camera position and the direction toward the light for the next draws.
func (r *Registry) SetView(eye, lightDir [3]float32) {
	r.eye = eye
	r.lightDir = lightDir
}

// SetAmbient sets the ambient color from 0xRRGGBB. Surfaces facing up get the full color,
// surfaces facing down half of it.
func (r *Registry) SetAmbient(rgb uint32) {
	c := [3]float32{
		float32(rgb>>16&0xff) / 255,
		float32(rgb>>8&0xff) / 255,
		float32(rgb&0xff) / 255,
	}
	r.sky = c
	r.ground = [3]float32{c[0] / 2, c[1] / 2, c[2] / 2}
}

func genMesh(prim string) (mesh, bool) {
	m := mesh{pivot: rl.MatrixIdentity()}
	switch prim {
	case Cube:
		m.mesh = rl.GenMeshCube(1, 1, 1)
	case Sphere:
		m.mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case Cylinder:
		// Generated from y=0 to y=1.
		m.mesh = rl.GenMeshCylinder(0.5, 1, cylinderSlices)
		m.pivot = rl.MatrixTranslate(0, -0.5, 0)
	case Plane:
		m.mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return mesh{}, false
	}
	return m, true
}

func (r *Registry) setup() {
	if r.ready {
		return
	}
	r.ready = true
	r.solid = rl.LoadMaterialDefault()
	r.wire = rl.LoadMaterialDefault()
	r.lit = loadLighting()
	if r.lit.valid {
		r.solid.Shader = r.lit.shader
	}
}

func (r *Registry) get(prim string) (mesh, bool) {
	r.setup()
	if m, ok := r.meshes[prim]; ok {
		return m, true
	}
	m, ok := genMesh(prim)
	if ok {
		r.meshes[prim] = m
	}
	return m, ok
}

func loadLighting() *lighting {
	sh := rl.LoadShaderFromMemory(vertexSrc, fragmentSrc)
	l := &lighting{shader: sh, valid: rl.IsShaderValid(sh)}
	if !l.valid {
		return l
	}
	l.eye = rl.GetShaderLocation(sh, "eye")
	l.light = rl.GetShaderLocation(sh, "toLight")
	l.sky = rl.GetShaderLocation(sh, "sky")
	l.ground = rl.GetShaderLocation(sh, "ground")
	l.shine = rl.GetShaderLocation(sh, "shininess")
	l.specular = rl.GetShaderLocation(sh, "specularLevel")
	return l
}

// apply uploads the per-frame uniforms. Values are copied to locals so cgo gets Go-owned memory.
func (r *Registry) apply() {
	l := r.lit
	if !l.valid {
		return
	}
	eye, light, sky, ground := r.eye, r.lightDir, r.sky, r.ground
	vec3 := func(loc int32, v []float32) {
		if loc >= 0 {
			rl.SetShaderValueV(l.shader, loc, v, rl.ShaderUniformVec3, 1)
		}
	}
	vec3(l.eye, eye[:])
	vec3(l.light, light[:])
	vec3(l.sky, sky[:])
	vec3(l.ground, ground[:])
	if l.shine >= 0 {
		rl.SetShaderValue(l.shader, l.shine, []float32{shininess}, rl.ShaderUniformFloat)
	}
	if l.specular >= 0 {
		rl.SetShaderValue(l.shader, l.specular, []float32{specularLevel}, rl.ShaderUniformFloat)
	}
}

// model composes pivot, scale, rotation and translation, applied in that order. A zero scale
// component counts as 1.
func (m mesh) model(t Transform) rl.Matrix {
	s := t.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	rot := rl.QuaternionToMatrix(rl.NewQuaternion(t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3]))
	out := rl.MatrixMultiply(m.pivot, rl.MatrixScale(s[0], s[1], s[2]))
	out = rl.MatrixMultiply(out, rot)
	return rl.MatrixMultiply(out, rl.MatrixTranslate(t.Position[0], t.Position[1], t.Position[2]))
}

func tint(mtl rl.Material, c rl.Color) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
}

// Draw draws one shaded instance of prim. Call between BeginMode3D and EndMode3D after SetView.
// Unknown names draw nothing.
func (r *Registry) Draw(prim string, t Transform, c rl.Color) {
	m, ok := r.get(prim)
	if !ok {
		return
	}
	tint(r.solid, c)
	r.apply()
	rl.DrawMesh(m.mesh, r.solid, m.model(t))
}

// DrawWires draws the unshaded wireframe of one instance of prim.
func (r *Registry) DrawWires(prim string, t Transform, c rl.Color) {
	m, ok := r.get(prim)
	if !ok {
		return
	}
	tint(r.wire, c)
	rl.EnableWireMode()
	rl.DrawMesh(m.mesh, r.wire, m.model(t))
	rl.DisableWireMode()
}
