package core

// RuntimeConfig contains configuration passed to the simulation and frontends.
// Frontends use it to adapt to screen size and to seed the run generator.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the frontend (default 60)
	Seed     int64 // RNG seed for run ids and decorative particles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
