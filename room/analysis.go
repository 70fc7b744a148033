package room

// PathStats summarises a ray path.
type PathStats struct {
	Segments int `json:"segments"`
	// Number of wall reflections
	Bounces int `json:"bounces"`
	// Length of the segments that ended on a wall or on the aim
	Length  float64 `json:"length"`
	HitAim  bool    `json:"hitAim"`
	Escaped bool    `json:"escaped"`
	// Hits per wall index
	WallHits map[int]int `json:"wallHits"`
}

func StatsOf(segments []RaySegment) PathStats {
	stats := PathStats{
		Segments: len(segments),
		WallHits: map[int]int{},
	}
	for _, s := range segments {
		if !s.HasHit {
			stats.Escaped = true
			continue
		}
		stats.Length += s.Length()
		if s.HitAim {
			stats.HitAim = true
			continue
		}
		stats.Bounces++
		stats.WallHits[s.HitWall.index]++
	}
	return stats
}

// Stats summarises the current ray path.
func (r *Room) Stats() PathStats {
	return StatsOf(r.Segments())
}
