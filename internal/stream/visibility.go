package stream

import (
	"github.com/kamstrup/intmap"

	"grassfield/internal/config"
	"grassfield/internal/geometry"
	"grassfield/internal/grid"
)

// RequiredCell is one coordinate the policy demands this frame, with its
// eviction protection and the LOD tier a newly created chunk would get.
type RequiredCell struct {
	Coord    grid.Coord
	Key      uint64
	SafeZone bool
	Tier     geometry.LodTier
}

// RequiredSet is the policy's per-frame output. It is reused across frames
// as scratch; Cells is ordered row-major over the scan square.
type RequiredSet struct {
	Base  grid.Coord
	Cells []RequiredCell

	byKey *intmap.Map[uint64, bool] // packed coord -> safe zone
}

func (s *RequiredSet) reset(base grid.Coord, capHint int) {
	s.Base = base
	if s.byKey == nil {
		s.byKey = intmap.New[uint64, bool](capHint)
	} else {
		for i := range s.Cells {
			s.byKey.Del(s.Cells[i].Key)
		}
	}
	s.Cells = s.Cells[:0]
}

func (s *RequiredSet) add(cell RequiredCell) {
	s.Cells = append(s.Cells, cell)
	s.byKey.Put(cell.Key, cell.SafeZone)
}

// Contains reports whether the packed coordinate is required this frame.
func (s *RequiredSet) Contains(key uint64) bool {
	_, ok := s.byKey.Get(key)
	return ok
}

// Policy computes which chunk coordinates must exist around the observer
// and classifies each as safe-zone or peripheral.
type Policy struct {
	cellSize       float64
	chunkRadius    int
	safeZoneRadius int
	highDetail     float64
	mediumDetail   float64
	maxDistance    float64
}

// NewPolicy derives a policy from a validated configuration.
func NewPolicy(cfg config.Config) Policy {
	return Policy{
		cellSize:       cfg.CellSize,
		chunkRadius:    cfg.ChunkRadius,
		safeZoneRadius: cfg.SafeZoneRadius(),
		highDetail:     cfg.HighDetailDistance,
		mediumDetail:   cfg.MediumDetailDistance,
		maxDistance:    cfg.MaxDistance,
	}
}

// SafeZoneRadius returns the grid radius of the never-evict zone.
func (p Policy) SafeZoneRadius() int {
	return p.safeZoneRadius
}

// Required fills dst with the coordinates that must be resident for an
// observer at (obsX, obsZ). The scan is a square over chunkRadius cells;
// peripheral cells additionally pass a closest-footprint-point distance
// test with a one-cell margin so chunks do not flicker at the edge.
func (p Policy) Required(obsX, obsZ float64, dst *RequiredSet) {
	base := grid.CellOf(obsX, obsZ, p.cellSize)
	side := 2*p.chunkRadius + 1
	dst.reset(base, side*side)

	cutoff := p.maxDistance + p.cellSize

	for dz := -p.chunkRadius; dz <= p.chunkRadius; dz++ {
		for dx := -p.chunkRadius; dx <= p.chunkRadius; dx++ {
			c := grid.Coord{X: base.X + dx, Z: base.Z + dz}
			cheb := dx
			if cheb < 0 {
				cheb = -cheb
			}
			if dz > cheb {
				cheb = dz
			} else if -dz > cheb {
				cheb = -dz
			}

			safe := cheb <= p.safeZoneRadius
			if !safe && c.FootprintDist(obsX, obsZ, p.cellSize) > cutoff {
				continue
			}

			dst.add(RequiredCell{
				Coord:    c,
				Key:      c.Pack(),
				SafeZone: safe,
				Tier:     geometry.TierForDistance(c.CenterDist(obsX, obsZ, p.cellSize), p.highDetail, p.mediumDetail),
			})
		}
	}
}
