// Package world holds the entity types shared by the roadmap and arena modes:
// nodes, the player ship, the start pad, projectile and particle pools, and
// the effects sink the simulation reports user-visible events through.
package world

import "github.com/vovakirdan/starmap/internal/core"

// NodeKind tags a point of interest on the roadmap grid.
type NodeKind int

const (
	NodeStart NodeKind = iota
	NodeGate
	NodePlanet
	NodeStation
)

// String returns the kind name used in layouts and logs.
func (k NodeKind) String() string {
	switch k {
	case NodeStart:
		return "start"
	case NodeGate:
		return "gate"
	case NodePlanet:
		return "planet"
	case NodeStation:
		return "station"
	default:
		return "unknown"
	}
}

// ShardColor is the palette a planet's shard is drawn from.
type ShardColor int

const (
	ShardNone ShardColor = iota
	ShardBlue
	ShardPink
	ShardGreen
	ShardPurple
)

// ShardPalette is the fixed color order used by the level generator.
var ShardPalette = []ShardColor{ShardBlue, ShardPink, ShardGreen, ShardPurple}

// String returns the color name.
func (c ShardColor) String() string {
	switch c {
	case ShardNone:
		return "none"
	case ShardBlue:
		return "blue"
	case ShardPink:
		return "pink"
	case ShardGreen:
		return "green"
	case ShardPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Node is a placed point of interest. X and Y are grid cells; the node's
// interaction center is the middle of its cell. Nodes are never mutated
// after placement.
type Node struct {
	Kind NodeKind
	X, Y int

	// Planet-only fields.
	ID        string
	Title     string
	ShardName string
	Summary   string
	Color     ShardColor
}

// Center returns the world position of the middle of the node's cell.
func (n Node) Center() core.Vec2 {
	return core.V(float64(n.X)+0.5, float64(n.Y)+0.5)
}

// Label returns the shard name, falling back to the planet title.
func (n Node) Label() string {
	if n.ShardName != "" {
		return n.ShardName
	}
	return n.Title
}
