// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

// world.go reduces the World configuration's API footprint using
// functional options, replacing the source's process-wide mutable
// globals (surface_character, push_and_pull, color flags, instance
// number) with an explicit struct threaded into Iterate and RenderTo.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

// World carries every tunable the physics engine and view snapshot
// consult. There is no process-wide state in the core: every entry
// point that needs one of these values takes a *World explicitly.
type World struct {
	Instance int `yaml:"instance"` // distinguishes multiple fabrics sharing a process.

	SurfaceCharacter SurfaceCharacter `yaml:"surface_character"`
	PushAndPull      bool             `yaml:"push_and_pull"`

	Gravity                float64 `yaml:"gravity"`
	Drag                   float64 `yaml:"drag"`
	PretenstFactor         float64 `yaml:"pretenst_factor"`
	IterationsPerFrame     uint32  `yaml:"iterations_per_frame"`
	IntervalCountdown      uint32  `yaml:"interval_countdown"`
	PretensingCountdown    uint32  `yaml:"pretensing_countdown"`
	ShapingPretenstFactor  float64 `yaml:"shaping_pretenst_factor"`
	ShapingStiffnessFactor float64 `yaml:"shaping_stiffness_factor"`
	ShapingDrag            float64 `yaml:"shaping_drag"`
	StiffnessFactor        float64 `yaml:"stiffness_factor"`
	PushOverPull           float64 `yaml:"push_over_pull"`
	Antigravity            float64 `yaml:"antigravity"`
	VisualStrain           float64 `yaml:"visual_strain"`
	MaxStrain              float64 `yaml:"max_strain"`
	SlackThreshold         float64 `yaml:"slack_threshold"`

	ColorPushes bool `yaml:"color_pushes"`
	ColorPulls  bool `yaml:"color_pulls"`
}

// worldDefaults mirrors default_world_feature: reasonable defaults so a
// fabric grows and settles even if no configuration attribute is set.
var worldDefaults = World{
	SurfaceCharacter:       Frozen,
	PushAndPull:            false,
	Gravity:                2e-7,
	Drag:                   0.0001,
	PretenstFactor:         0.03,
	IterationsPerFrame:     50,
	IntervalCountdown:      2000,
	PretensingCountdown:    10000,
	ShapingPretenstFactor:  0.3,
	ShapingStiffnessFactor: 0.0005,
	ShapingDrag:            0.0005,
	StiffnessFactor:        0.01,
	PushOverPull:           3,
	Antigravity:            0.001,
	VisualStrain:           1,
	MaxStrain:              0.2,
	SlackThreshold:         0.0005,
}

// Option overrides one or more World attributes. For use in NewWorld().
type Option func(*World)

// NewWorld builds a World starting from worldDefaults and applying opts
// in order.
//
//	w := fabric.NewWorld(
//	    fabric.Surface(fabric.Bouncy),
//	    fabric.PushPull(true),
//	)
func NewWorld(opts ...Option) *World {
	w := worldDefaults
	for _, opt := range opts {
		opt(&w)
	}
	return &w
}

// Surface sets the ground-interaction character.
func Surface(c SurfaceCharacter) Option {
	return func(w *World) { w.SurfaceCharacter = c }
}

// PushPull turns push-and-pull mode on or off. When off, a member's
// strain is clamped to the side that agrees with its role.
func PushPull(enabled bool) Option {
	return func(w *World) { w.PushAndPull = enabled }
}

// Colors sets the view snapshot's color policy flags.
func Colors(pushes, pulls bool) Option {
	return func(w *World) { w.ColorPushes = pushes; w.ColorPulls = pulls }
}

// Instance distinguishes multiple fabrics sharing a process, for logging.
func Instance(n int) Option {
	return func(w *World) { w.Instance = n }
}

// ApplyFeatures overlays a tenscript plan's (features ...) overrides onto
// w. Percent-valued features (visual-strain, gravity, etc.) carry the
// literal number written before the '%' (150% arrives as 150) and are
// stored as given, without dividing by 100.
func (w *World) ApplyFeatures(f map[string]float64) {
	set := func(key string, dst *float64) {
		if v, ok := f[key]; ok {
			*dst = v
		}
	}
	set("gravity", &w.Gravity)
	set("drag", &w.Drag)
	set("pretenst-factor", &w.PretenstFactor)
	set("shaping-pretenst-factor", &w.ShapingPretenstFactor)
	set("shaping-stiffness-factor", &w.ShapingStiffnessFactor)
	set("shaping-drag", &w.ShapingDrag)
	set("stiffness-factor", &w.StiffnessFactor)
	set("push-over-pull", &w.PushOverPull)
	set("antigravity", &w.Antigravity)
	set("visual-strain", &w.VisualStrain)
	if v, ok := f["iterations-per-frame"]; ok {
		w.IterationsPerFrame = uint32(v)
	}
	if v, ok := f["interval-countdown"]; ok {
		w.IntervalCountdown = uint32(v)
	}
	if v, ok := f["pretensing-countdown"]; ok {
		w.PretensingCountdown = uint32(v)
	}
}
