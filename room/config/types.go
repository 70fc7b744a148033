package config

import "time"

// Config holds everything the command line tools and the server need besides
// the room itself
type Config struct {
	Metadata   Metadata   `yaml:"metadata"`
	Input      Input      `yaml:"input"`
	Simulation Simulation `yaml:"simulation"`
	Render     Render     `yaml:"render"`
	Scan       Scan       `yaml:"scan"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

// Input names where the room comes from: a saved room or a 3MF model to
// slice. Exactly one is expected.
type Input struct {
	Room struct {
		Path string `yaml:"path"`
	} `yaml:"room"`
	Mesh Mesh `yaml:"mesh"`
}

type Mesh struct {
	Path   string  `yaml:"path"`
	Height float64 `yaml:"height"` // Cut height in model units
	Scale  float64 `yaml:"scale"`  // Model units to room units
}

type Simulation struct {
	MaxRayDepth    int     `yaml:"max_ray_depth"`
	FarDistance    float64 `yaml:"far_distance"`
	MinHitDistance float64 `yaml:"min_hit_distance"`
	Precision      float64 `yaml:"precision"`
}

type Render struct {
	Width  int     `yaml:"width"`  // Pixels
	Height int     `yaml:"height"` // Pixels
	Margin float64 `yaml:"margin"` // Pixels

	Colors struct {
		Background string `yaml:"background"`
		Wall       string `yaml:"wall"`
		RoundWall  string `yaml:"round_wall"`
		Point      string `yaml:"point"`
		Ray        string `yaml:"ray"`
		Aim        string `yaml:"aim"`
	} `yaml:"colors"`

	WallWidth   float64 `yaml:"wall_width"`
	RayWidth    float64 `yaml:"ray_width"`
	PointRadius float64 `yaml:"point_radius"`
}

type Scan struct {
	Samples int `yaml:"samples"`
}

type Output struct {
	Dir string `yaml:"dir"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	DBPath       string        `yaml:"db_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}
