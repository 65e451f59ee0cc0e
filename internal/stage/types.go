package stage

// Def is the YAML definition of a stage (see stage.yaml).
type Def struct {
	Gravity  [3]float32   `yaml:"gravity"`
	Damping  float32      `yaml:"damping"`
	Camera   CameraDef    `yaml:"camera"`
	Light    LightDef     `yaml:"light"`
	Contacts []ContactDef `yaml:"contacts,omitempty"`
	Decor    []DecorDef   `yaml:"decor,omitempty"`
	Bodies   []BodyDef    `yaml:"bodies"`
}

// CameraDef places the viewer. DebugPosition is used when debug mode is on.
type CameraDef struct {
	Position      [3]float32 `yaml:"position"`
	DebugPosition [3]float32 `yaml:"debug_position"`
	Fovy          float32    `yaml:"fovy"`
}

// LightDef is one directional light plus an ambient color.
type LightDef struct {
	Position [3]float32 `yaml:"position"`
	Ambient  uint32     `yaml:"ambient"`
}

// ContactDef tunes contacts between two material names.
type ContactDef struct {
	A           string  `yaml:"a"`
	B           string  `yaml:"b"`
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
}

// DecorDef is render-only geometry with no physics body (e.g. the back wall).
type DecorDef struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Position [3]float32 `yaml:"position"`
	Size     [3]float32 `yaml:"size"`
	Color    uint32     `yaml:"color,omitempty"`
}

// RotationDef is an axis and an angle in degrees.
type RotationDef struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

// BodyDef describes one rigid body. Role marks bodies the game needs by function.
type BodyDef struct {
	Name           string       `yaml:"name"`
	Role           string       `yaml:"role,omitempty"`
	MirrorOf       string       `yaml:"mirror_of,omitempty"`
	Material       string       `yaml:"material,omitempty"`
	Mass           float32      `yaml:"mass,omitempty"`
	Position       [3]float32   `yaml:"position,omitempty"`
	Rotation       *RotationDef `yaml:"rotation,omitempty"`
	Color          uint32       `yaml:"color,omitempty"`
	LinearFactor   *[3]float32  `yaml:"linear_factor,omitempty"`
	AngularFactor  *[3]float32  `yaml:"angular_factor,omitempty"`
	AngularDamping *float32     `yaml:"angular_damping,omitempty"`
	Shapes         []ShapeDef   `yaml:"shapes"`
}

// ShapeDef is one shape of a body. Type is sphere, box, plane, or cylinder.
type ShapeDef struct {
	Type        string       `yaml:"type"`
	Radius      float32      `yaml:"radius,omitempty"`
	HalfExtents [3]float32   `yaml:"half_extents,omitempty"`
	Height      float32      `yaml:"height,omitempty"`
	Segments    int          `yaml:"segments,omitempty"`
	Offset      [3]float32   `yaml:"offset,omitempty"`
	Rotation    *RotationDef `yaml:"rotation,omitempty"`
}

// Body roles.
const (
	RoleBall   = "ball"
	RoleSeesaw = "seesaw"
	RolePlayer = "player"
	RoleMirror = "mirror"
	RoleGround = "ground"
	RoleGoal   = "goal"
)
