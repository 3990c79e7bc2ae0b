// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package tenscript

import (
	"fmt"
	"strings"

	fabric "github.com/galvanized/tensegrity"
)

// SeedType is the chirality (and, for double seeds, the chirality
// change partway through) a build phase starts from.
type SeedType uint8

const (
	SeedLeft SeedType = iota
	SeedLeftRight
	SeedRight
	SeedRightLeft
)

// Mark names a post-growth join point: a face tagged with mark_name,
// later paired up by ExecutePostMark.
type Mark struct {
	Face fabric.FaceName
	Name string
}

// TenscriptNodeKind discriminates the two shapes a build tree node can
// take.
type TenscriptNodeKind uint8

const (
	NodeGrow TenscriptNodeKind = iota
	NodeBranch
)

// TenscriptNode is one node of the compiled build tree: either a single
// growth step (optionally marked and/or branching further), or a fan-out
// into several named faces of a double twist.
type TenscriptNode struct {
	Kind TenscriptNodeKind

	// NodeGrow
	Face    fabric.FaceName
	Forward string
	Marks   []Mark
	Branch  *TenscriptNode

	// NodeBranch
	Subtrees []TenscriptNode
}

// BuildPhase holds the parsed (build ...) clause.
type BuildPhase struct {
	Seed      *SeedType
	Scale     *float64
	Vulcanize *VulcanizeType
	Growth    *TenscriptNode
}

// VulcanizeType selects the final joining pattern. Not wired to a
// growth behavior yet; parsed and carried for forward compatibility.
type VulcanizeType uint8

const (
	VulcanizeBowtie VulcanizeType = iota
	VulcanizeSnelson
)

// Features holds the parsed (features ...) clause: each field overrides
// the corresponding World default only if present.
type Features struct {
	IterationsPerFrame    *uint32
	VisualStrain          *float64
	Gravity               *float64
	PretenstFactor        *float64
	StiffnessFactor       *float64
	PushOverPull          *float64
	Drag                  *float64
	ShapingPretenstFactor *float64
	ShapingDrag           *float64
	ShapingStiffnessFactor *float64
	Antigravity           *float64
	IntervalCountdown     *float64
	PretensingCountdown   *float64
}

// AsMap flattens Features into the key set World.ApplyFeatures expects,
// skipping anything left unset.
func (f Features) AsMap() map[string]float64 {
	m := make(map[string]float64)
	add := func(key string, v *float64) {
		if v != nil {
			m[key] = *v
		}
	}
	add("gravity", f.Gravity)
	add("drag", f.Drag)
	add("pretenst-factor", f.PretenstFactor)
	add("shaping-pretenst-factor", f.ShapingPretenstFactor)
	add("shaping-stiffness-factor", f.ShapingStiffnessFactor)
	add("shaping-drag", f.ShapingDrag)
	add("stiffness-factor", f.StiffnessFactor)
	add("push-over-pull", f.PushOverPull)
	add("antigravity", f.Antigravity)
	add("visual-strain", f.VisualStrain)
	add("interval-countdown", f.IntervalCountdown)
	add("pretensing-countdown", f.PretensingCountdown)
	if f.IterationsPerFrame != nil {
		m["iterations-per-frame"] = float64(*f.IterationsPerFrame)
	}
	return m
}

// FabricPlan is the typed result of compiling a (fabric ...) program.
type FabricPlan struct {
	Name       *string
	Scale      *float64
	Surface    *fabric.SurfaceCharacter
	Features   Features
	BuildPhase BuildPhase
}

// Compile scans, parses, and type-checks source into a FabricPlan.
func Compile(source string) (*FabricPlan, error) {
	sexp, err := ParseSexp(source)
	if err != nil {
		return nil, err
	}
	// Keep the *ParseError in its own variable: assigning a nil pointer to
	// err (an error interface) would make err non-nil.
	plan, perr := fabricPlan(sexp)
	if perr != nil {
		return nil, perr
	}
	return plan, nil
}

// ParseErrorKind enumerates the ways type-checking the Sexp tree into a
// FabricPlan can fail.
type ParseErrorKind uint8

const (
	Mismatch ParseErrorKind = iota
	BadCall
	TypeError
	AlreadyDefined
	IllegalRepetition
	MultipleBranches
	IllegalCall
	Unknown
)

// ParseError reports a single plan-compilation failure, naming the rule
// or context it occurred in and the offending Sexp.
type ParseError struct {
	Kind     ParseErrorKind
	Rule     string
	Context  string
	Property string
	Expected string
	Value    string
	Sexp     Sexp
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case Mismatch:
		return fmt.Sprintf("mismatch in %s: expected %s, found %s", e.Rule, e.Expected, e.Sexp)
	case BadCall:
		return fmt.Sprintf("bad call in %s: expected %s, found %s", e.Context, e.Expected, e.Sexp)
	case TypeError:
		return fmt.Sprintf("type error: expected %s, found %s", e.Expected, e.Sexp)
	case AlreadyDefined:
		return fmt.Sprintf("%s already defined: %s", e.Property, e.Sexp)
	case IllegalRepetition:
		return fmt.Sprintf("illegal repetition of %s %q", e.Context, e.Value)
	case MultipleBranches:
		return "a grow step may only have one branch"
	case IllegalCall:
		return fmt.Sprintf("illegal call in %s: %s", e.Context, e.Sexp)
	default:
		return fmt.Sprintf("unknown parse error: %s", e.Sexp)
	}
}

type call struct {
	head string
	tail []Sexp
}

func expectCall(rule string, sexp Sexp) (call, *ParseError) {
	if sexp.Kind != SexpList || len(sexp.Terms) == 0 {
		return call{}, &ParseError{Kind: Mismatch, Rule: rule, Expected: "( .. )", Sexp: sexp}
	}
	head := sexp.Terms[0]
	if head.Kind != SexpIdent {
		return call{}, &ParseError{Kind: Mismatch, Rule: rule, Expected: "(<head:ident> ..)", Sexp: sexp}
	}
	return call{head: head.Ident, tail: sexp.Terms[1:]}, nil
}

func fabricPlan(sexp Sexp) (*FabricPlan, *ParseError) {
	c, err := expectCall("fabric", sexp)
	if err != nil {
		return nil, err
	}
	if c.head != "fabric" {
		return nil, &ParseError{Kind: Mismatch, Rule: "fabric", Expected: "(fabric ..)", Sexp: sexp}
	}

	plan := &FabricPlan{}
	for _, term := range c.tail {
		tc, err := expectCall("fabric", term)
		if err != nil {
			return nil, err
		}
		switch tc.head {
		case "scale":
			if plan.Scale != nil {
				return nil, &ParseError{Kind: AlreadyDefined, Property: "scale", Sexp: term}
			}
			if len(tc.tail) != 1 || tc.tail[0].Kind != SexpPercent {
				return nil, &ParseError{Kind: BadCall, Context: "fabric plan", Expected: "(scale <percent>)", Sexp: term}
			}
			scale := tc.tail[0].Percent / 100.0
			plan.Scale = &scale
		case "surface":
			if plan.Surface != nil {
				return nil, &ParseError{Kind: AlreadyDefined, Property: "surface", Sexp: term}
			}
			if len(tc.tail) != 1 {
				return nil, &ParseError{Kind: BadCall, Context: "fabric plan", Expected: "(surface <value>)", Sexp: term}
			}
			surface, err := expectSurface(tc.tail[0])
			if err != nil {
				return nil, err
			}
			plan.Surface = &surface
		case "name":
			if plan.Name != nil {
				return nil, &ParseError{Kind: AlreadyDefined, Property: "name", Sexp: term}
			}
			if len(tc.tail) != 1 || tc.tail[0].Kind != SexpString {
				return nil, &ParseError{Kind: BadCall, Context: "fabric plan", Expected: "(name <string>)", Sexp: term}
			}
			name := tc.tail[0].Str
			plan.Name = &name
		case "features":
			if err := features(&plan.Features, tc.tail); err != nil {
				return nil, err
			}
		case "build":
			if err := build(&plan.BuildPhase, tc.tail); err != nil {
				return nil, err
			}
		case "shape", "pretense":
			// not yet implemented by the growth driver.
		default:
			return nil, &ParseError{Kind: IllegalCall, Context: "fabric plan", Sexp: term}
		}
	}
	return plan, nil
}

func expectSurface(value Sexp) (fabric.SurfaceCharacter, *ParseError) {
	if value.Kind != SexpAtom {
		return 0, &ParseError{Kind: TypeError, Expected: "bouncy | frozen | sticky", Sexp: value}
	}
	switch value.Atom {
	case "bouncy":
		return fabric.Bouncy, nil
	case "frozen":
		return fabric.Frozen, nil
	case "sticky":
		return fabric.Sticky, nil
	}
	return 0, &ParseError{Kind: TypeError, Expected: "bouncy | frozen | sticky", Sexp: value}
}

func build(phase *BuildPhase, terms []Sexp) *ParseError {
	for _, term := range terms {
		tc, err := expectCall("build", term)
		if err != nil {
			return err
		}
		switch tc.head {
		case "seed":
			if phase.Seed != nil {
				return &ParseError{Kind: AlreadyDefined, Property: "seed", Sexp: term}
			}
			if len(tc.tail) != 1 {
				return &ParseError{Kind: BadCall, Context: "build phase", Expected: "(seed <value>)", Sexp: term}
			}
			seed, perr := expectSeed(tc.tail[0])
			if perr != nil {
				return perr
			}
			phase.Seed = &seed
		case "vulcanize":
			if phase.Vulcanize != nil {
				return &ParseError{Kind: AlreadyDefined, Property: "vulcanize", Sexp: term}
			}
			if len(tc.tail) != 1 {
				return &ParseError{Kind: BadCall, Context: "build phase", Expected: "(vulcanize <value>)", Sexp: term}
			}
			v, perr := expectVulcanize(tc.tail[0])
			if perr != nil {
				return perr
			}
			phase.Vulcanize = &v
		case "scale":
			if phase.Scale != nil {
				return &ParseError{Kind: AlreadyDefined, Property: "scale", Sexp: term}
			}
			if len(tc.tail) != 1 || tc.tail[0].Kind != SexpPercent {
				return &ParseError{Kind: BadCall, Context: "build phase", Expected: "(scale <percent>)", Sexp: term}
			}
			scale := tc.tail[0].Percent / 100.0
			phase.Scale = &scale
		case "branch", "grow":
			if phase.Growth != nil {
				return &ParseError{Kind: AlreadyDefined, Property: "growth", Sexp: term}
			}
			node, perr := tenscriptNode(term)
			if perr != nil {
				return perr
			}
			phase.Growth = node
		default:
			return &ParseError{Kind: IllegalCall, Context: "build phase", Sexp: term}
		}
	}
	return nil
}

func expectSeed(value Sexp) (SeedType, *ParseError) {
	if value.Kind != SexpAtom {
		return 0, &ParseError{Kind: TypeError, Expected: "left | left-right | right | right-left", Sexp: value}
	}
	switch value.Atom {
	case "left":
		return SeedLeft, nil
	case "left-right":
		return SeedLeftRight, nil
	case "right":
		return SeedRight, nil
	case "right-left":
		return SeedRightLeft, nil
	}
	return 0, &ParseError{Kind: TypeError, Expected: "left | left-right | right | right-left", Sexp: value}
}

func expectVulcanize(value Sexp) (VulcanizeType, *ParseError) {
	if value.Kind != SexpAtom {
		return 0, &ParseError{Kind: TypeError, Expected: "bowtie | snelson", Sexp: value}
	}
	switch value.Atom {
	case "bowtie":
		return VulcanizeBowtie, nil
	case "snelson":
		return VulcanizeSnelson, nil
	}
	return 0, &ParseError{Kind: TypeError, Expected: "bowtie | snelson", Sexp: value}
}

func tenscriptNode(sexp Sexp) (*TenscriptNode, *ParseError) {
	c, err := expectCall("tenscript_node", sexp)
	if err != nil {
		return nil, err
	}
	switch c.head {
	case "grow":
		if len(c.tail) < 2 || c.tail[0].Kind != SexpAtom || c.tail[1].Kind != SexpInteger {
			return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "face name and forward count", Sexp: sexp}
		}
		face, ok := fabric.FaceNameFromAtom(c.tail[0].Atom)
		if !ok {
			return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "unrecognized face name", Sexp: c.tail[0]}
		}
		forwardCount := c.tail[1].Integer
		forward := strings.Repeat("X", int(forwardCount))

		node := &TenscriptNode{Kind: NodeGrow, Face: face, Forward: forward}
		for _, op := range c.tail[2:] {
			opc, err := expectCall("tenscript_node", op)
			if err != nil {
				return nil, err
			}
			switch opc.head {
			case "mark":
				if len(opc.tail) != 2 || opc.tail[0].Kind != SexpAtom || opc.tail[1].Kind != SexpAtom {
					return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "(mark <face_name> <name>)", Sexp: op}
				}
				markFace, ok := fabric.FaceNameFromAtom(opc.tail[0].Atom)
				if !ok {
					return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "unrecognized face name", Sexp: opc.tail[0]}
				}
				node.Marks = append(node.Marks, Mark{Face: markFace, Name: opc.tail[1].Atom})
			case "branch":
				if node.Branch != nil {
					return nil, &ParseError{Kind: MultipleBranches, Sexp: op}
				}
				sub, err := tenscriptNode(op)
				if err != nil {
					return nil, err
				}
				node.Branch = sub
			default:
				return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "mark | branch", Sexp: sexp}
			}
		}
		return node, nil

	case "branch":
		node := &TenscriptNode{Kind: NodeBranch}
		seen := make(map[fabric.FaceName]bool)
		for _, sub := range c.tail {
			subc, err := expectCall("tenscript_node", sub)
			if err != nil {
				return nil, err
			}
			if subc.head != "grow" {
				return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "(grow ..) under (branch ..)", Sexp: sub}
			}
			subtree, err := tenscriptNode(sub)
			if err != nil {
				return nil, err
			}
			if subtree.Kind != NodeGrow {
				return nil, &ParseError{Kind: Unknown, Sexp: sub}
			}
			if seen[subtree.Face] {
				return nil, &ParseError{Kind: IllegalRepetition, Context: "face name", Value: subtree.Face.String(), Sexp: sub}
			}
			seen[subtree.Face] = true
			node.Subtrees = append(node.Subtrees, *subtree)
		}
		return node, nil

	default:
		return nil, &ParseError{Kind: Mismatch, Rule: "tenscript_node", Expected: "grow | branch", Sexp: sexp}
	}
}

var featureKeys = map[string]func(*Features, float64){
	"gravity":                  func(f *Features, v float64) { f.Gravity = &v },
	"drag":                     func(f *Features, v float64) { f.Drag = &v },
	"pretenst-factor":          func(f *Features, v float64) { f.PretenstFactor = &v },
	"shaping-pretenst-factor":  func(f *Features, v float64) { f.ShapingPretenstFactor = &v },
	"shaping-stiffness-factor": func(f *Features, v float64) { f.ShapingStiffnessFactor = &v },
	"shaping-drag":             func(f *Features, v float64) { f.ShapingDrag = &v },
	"stiffness-factor":         func(f *Features, v float64) { f.StiffnessFactor = &v },
	"push-over-pull":           func(f *Features, v float64) { f.PushOverPull = &v },
	"antigravity":              func(f *Features, v float64) { f.Antigravity = &v },
	"visual-strain":            func(f *Features, v float64) { f.VisualStrain = &v },
	"interval-countdown":       func(f *Features, v float64) { f.IntervalCountdown = &v },
	"pretensing-countdown":     func(f *Features, v float64) { f.PretensingCountdown = &v },
}

func features(f *Features, terms []Sexp) *ParseError {
	defined := make(map[string]bool)
	for _, term := range terms {
		c, err := expectCall("features", term)
		if err != nil {
			return err
		}
		if len(c.tail) != 1 {
			return &ParseError{Kind: BadCall, Context: "features", Expected: "(<feature-name> <value>)", Sexp: term}
		}
		if defined[c.head] {
			return &ParseError{Kind: IllegalRepetition, Context: "feature name", Value: c.head, Sexp: term}
		}
		defined[c.head] = true

		if c.head == "iterations-per-frame" {
			if c.tail[0].Kind != SexpInteger {
				return &ParseError{Kind: Mismatch, Rule: "features", Expected: "(iterations-per-frame <integer>)", Sexp: term}
			}
			v := uint32(c.tail[0].Integer)
			f.IterationsPerFrame = &v
			continue
		}

		setter, ok := featureKeys[c.head]
		if !ok {
			return &ParseError{Kind: BadCall, Context: "features", Expected: "legal feature name", Sexp: term}
		}
		if c.tail[0].Kind != SexpPercent {
			return &ParseError{Kind: Mismatch, Rule: "features", Expected: fmt.Sprintf("(%s <percent>)", c.head), Sexp: term}
		}
		setter(f, c.tail[0].Percent)
	}
	return nil
}
