package room

import (
	"github.com/fogleman/pt/pt"
)

// Point is a vertex of the room polygon.
//
// Points are owned by their Room. A Point only knows the indices of the walls
// that touch it so that moving it can refresh exactly those walls.
type Point struct {
	index int
	coord pt.Vector
	walls []int
}

func (p *Point) Index() int {
	return p.index
}

func (p *Point) Coord() pt.Vector {
	return p.coord
}

func (p *Point) X() float64 {
	return p.coord.X
}

func (p *Point) Y() float64 {
	return p.coord.Y
}

// Walls returns the indices of the walls incident on this point.
func (p *Point) Walls() []int {
	walls := make([]int, len(p.walls))
	copy(walls, p.walls)
	return walls
}

func (p *Point) addWall(wall int) {
	for _, w := range p.walls {
		if w == wall {
			return
		}
	}
	p.walls = append(p.walls, wall)
}

func (p *Point) updateWalls(r *Room) {
	for _, w := range p.walls {
		r.walls[w].updateParams()
	}
}
