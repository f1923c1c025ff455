package config

import "sort"

// Planet is one catalog entry: a shard-bearing planet tied to a campaign level.
type Planet struct {
	ID        string `yaml:"id"`
	Phase     int    `yaml:"phase"` // campaign level the planet appears on
	Order     int    `yaml:"order"`
	Title     string `yaml:"title"`
	ShardName string `yaml:"shard_name"`
	Summary   string `yaml:"summary"`
}

// Catalog is the campaign content the level generator places on the map.
type Catalog struct {
	Planets []Planet `yaml:"planets"`
}

// ForLevel returns the planets for a level sorted by their order field.
// The catalog itself is not modified.
func (c *Catalog) ForLevel(level int) []Planet {
	if c == nil {
		return nil
	}
	var out []Planet
	for _, p := range c.Planets {
		if p.Phase == level {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// DefaultCatalog returns the built-in five-level campaign.
func DefaultCatalog() Catalog {
	return Catalog{Planets: []Planet{
		{ID: "p1a", Phase: 1, Order: 1, Title: "Alpha Relay", ShardName: "Shard of Origin", Summary: "The first signal beacon."},
		{ID: "p1b", Phase: 1, Order: 2, Title: "Beacon Prime", ShardName: "Shard of Light", Summary: "A flickering outpost."},
		{ID: "p1c", Phase: 1, Order: 3, Title: "Dustfall Station", ShardName: "Shard of Dust", Summary: "Abandoned mining rig."},

		{ID: "p2a", Phase: 2, Order: 1, Title: "Nether Crossing", ShardName: "Shard of Shadow", Summary: "A dark corridor."},
		{ID: "p2b", Phase: 2, Order: 2, Title: "Iron Veil", ShardName: "Shard of Iron", Summary: "Heavy debris field."},
		{ID: "p2c", Phase: 2, Order: 3, Title: "Echo Drift", ShardName: "Shard of Echo", Summary: "Strange resonance."},

		{ID: "p3a", Phase: 3, Order: 1, Title: "Crimson Nebula", ShardName: "Shard of Flame", Summary: "Superheated gas cloud."},
		{ID: "p3b", Phase: 3, Order: 2, Title: "Void Anchor", ShardName: "Shard of Void", Summary: "Gravitational anomaly."},
		{ID: "p3c", Phase: 3, Order: 3, Title: "Crystal Spire", ShardName: "Shard of Crystal", Summary: "Mineral deposit."},
		{ID: "p3d", Phase: 3, Order: 4, Title: "Pulse Gate", ShardName: "Shard of Pulse", Summary: "Energy conduit."},

		{ID: "p4a", Phase: 4, Order: 1, Title: "Warden's Watch", ShardName: "Shard of Vigil", Summary: "Sentinel territory."},
		{ID: "p4b", Phase: 4, Order: 2, Title: "Obsidian Reach", ShardName: "Shard of Obsidian", Summary: "Black-glass asteroids."},
		{ID: "p4c", Phase: 4, Order: 3, Title: "Tempest Ring", ShardName: "Shard of Storm", Summary: "Ion storm corridor."},
		{ID: "p4d", Phase: 4, Order: 4, Title: "Cipher Relay", ShardName: "Shard of Code", Summary: "Encrypted transmission hub."},

		{ID: "p5a", Phase: 5, Order: 1, Title: "The Altar Gate", ShardName: "Shard of Reckoning", Summary: "Final approach."},
		{ID: "p5b", Phase: 5, Order: 2, Title: "Pyre Sanctum", ShardName: "Shard of Pyre", Summary: "Sacred fire."},
		{ID: "p5c", Phase: 5, Order: 3, Title: "Veil of Stars", ShardName: "Shard of Stars", Summary: "Cosmic threshold."},
		{ID: "p5d", Phase: 5, Order: 4, Title: "The Last Signal", ShardName: "Shard of Silence", Summary: "Beyond the veil."},
	}}
}
