// Package stream keeps a bounded window of procedurally generated grass
// chunks resident around a moving observer. One Engine.Update call per
// rendered frame reconciles what exists against what the visibility policy
// requires; everything runs on the caller's thread.
package stream

import (
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"grassfield/internal/config"
	"grassfield/internal/geometry"
	"grassfield/internal/grass"
	"grassfield/internal/grid"
	"grassfield/internal/profiling"
)

// DrawDescriptor is what the rendering collaborator consumes for one
// visible chunk.
type DrawDescriptor struct {
	Coord         grid.Coord
	WorldPosition mgl32.Vec3
	Geometry      geometry.Handle
	Attributes    *grass.AttributeSet
	InstanceCount int
}

// LODParams is the per-frame uniform bundle the renderer forwards to its
// shader stage for continuous per-instance scale LOD.
type LODParams struct {
	ObserverX            float64
	ObserverZ            float64
	HighDetailDistance   float64
	MediumDetailDistance float64
}

// Stats are cumulative diagnostic counters plus current occupancy.
type Stats struct {
	Created            uint64
	Reused             uint64
	Evicted            uint64
	Disposed           uint64
	ProviderSkips      uint64
	DroppedCorrupt     uint64
	NonFiniteHeights   uint64
	NonFinitePositions uint64

	Resident int
	Pooled   int
}

// Engine owns the active chunk registry and the retirement pool. It is not
// safe for concurrent use; all methods must be called from the frame loop.
type Engine struct {
	cfg      config.Config
	policy   Policy
	provider geometry.Provider
	gen      *grass.Generator
	logger   golog.Logger

	registry *Registry
	pool     *Pool
	required RequiredSet

	obsX        float64
	obsZ        float64
	hasObserver bool
	frame       uint64

	stats        Stats
	evictScratch []*Record
}

// NewEngine validates cfg and builds an engine around the given geometry
// provider and terrain height source.
func NewEngine(cfg config.Config, provider geometry.Provider, heightAt grass.HeightFunc, logger golog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "stream: bad configuration")
	}
	if provider == nil {
		return nil, errors.New("stream: nil geometry provider")
	}
	if heightAt == nil {
		return nil, errors.New("stream: nil height source")
	}

	side := 2*cfg.ChunkRadius + 1
	e := &Engine{
		cfg:      cfg,
		policy:   NewPolicy(cfg),
		provider: provider,
		gen:      grass.NewGenerator(cfg.CellSize, cfg.InstancesPerChunk, cfg.ClusterSize, cfg.Seed, heightAt),
		logger:   logger,
		registry: NewRegistry(side * side),
		pool:     NewPool(cfg.MaxPoolSize),
	}
	logger.Infow("grass streaming engine ready",
		"cellSize", cfg.CellSize,
		"chunkRadius", cfg.ChunkRadius,
		"safeZoneRadius", cfg.SafeZoneRadius(),
		"instancesPerChunk", cfg.InstancesPerChunk,
		"maxPoolSize", cfg.MaxPoolSize,
	)
	return e, nil
}

// Update runs one frame of reconciliation for an observer at (obsX, obsZ).
// Creations for the full required set happen before any eviction decision,
// and safe-zone chunks are never evicted.
func (e *Engine) Update(obsX, obsZ float64) {
	defer profiling.Track("stream.Update")()
	e.frame++

	// Non-finite positions would corrupt cell addressing; fall back to the
	// last good observer position.
	if math.IsNaN(obsX) || math.IsInf(obsX, 0) || math.IsNaN(obsZ) || math.IsInf(obsZ, 0) {
		e.stats.NonFinitePositions++
		if !e.hasObserver {
			obsX, obsZ = 0, 0
		} else {
			obsX, obsZ = e.obsX, e.obsZ
		}
	}
	e.obsX, e.obsZ = obsX, obsZ
	e.hasObserver = true

	e.policy.Required(obsX, obsZ, &e.required)
	e.create()
	e.evict()

	e.stats.NonFiniteHeights = e.gen.NonFiniteHeights()
}

// create makes every required coordinate resident, reusing pooled records
// ahead of allocating. A provider failure skips the coordinate for this
// frame only.
func (e *Engine) create() {
	defer profiling.Track("stream.create")()
	for i := range e.required.Cells {
		cell := &e.required.Cells[i]

		if rec, ok := e.registry.Get(cell.Key); ok {
			// Content does not depend on distance; only the eviction
			// protection is refreshed as the chunk drifts in or out of
			// the safe zone.
			rec.Evictable = !cell.SafeZone
			rec.Visible = true
			continue
		}

		handle, err := e.provider.TemplateFor(cell.Tier)
		if err != nil {
			e.stats.ProviderSkips++
			if e.stats.ProviderSkips == 1 || e.stats.ProviderSkips%300 == 0 {
				e.logger.Warnw("geometry provider failed, retrying next frame",
					"tier", cell.Tier.String(), "skips", e.stats.ProviderSkips, "error", err)
			}
			continue
		}

		rec := e.pool.Get()
		if rec == nil {
			rec = &Record{}
			e.stats.Created++
		} else if prev, resident := e.registry.Get(rec.Key); resident && prev == rec {
			// A pooled record still reachable from the registry means the
			// ownership invariant broke. Drop it rather than crash the
			// frame loop.
			e.stats.DroppedCorrupt++
			e.logger.Errorw("chunk record owned by both pool and registry, dropping", "coord", rec.Coord.Key())
			rec = &Record{}
			e.stats.Created++
		} else {
			e.stats.Reused++
		}
		rec.pooled = false

		if tier, ok := rec.Geometry.Tier(); !ok || tier != cell.Tier {
			rec.Geometry.Assign(cell.Tier, handle)
		}
		rec.place(cell.Coord, e.cfg.CellSize)
		e.gen.GenerateInto(cell.Coord, &rec.Attributes)
		rec.Evictable = !cell.SafeZone
		rec.Visible = true
		e.registry.Put(rec)
	}
}

// evict retires resident chunks the final required set no longer contains,
// except those the safe zone protects this frame.
func (e *Engine) evict() {
	defer profiling.Track("stream.evict")()
	e.evictScratch = e.evictScratch[:0]
	for _, rec := range e.registry.Resident() {
		if e.required.Contains(rec.Key) {
			continue
		}
		if grid.ChebyshevDist(rec.Coord, e.required.Base) <= e.policy.SafeZoneRadius() {
			// Hard rule: the ground around the observer never disappears.
			rec.Evictable = false
			continue
		}
		e.evictScratch = append(e.evictScratch, rec)
	}

	for _, rec := range e.evictScratch {
		e.registry.Del(rec.Key)
		rec.Visible = false
		if e.pool.Put(rec) {
			e.stats.Evicted++
		} else {
			rec.Dispose()
			e.stats.Disposed++
		}
	}
}

// AppendDrawDescriptors appends one descriptor per visible chunk to dst,
// in ascending packed-key order so output is frame-stable.
func (e *Engine) AppendDrawDescriptors(dst []DrawDescriptor) []DrawDescriptor {
	start := len(dst)
	for _, rec := range e.registry.Resident() {
		if !rec.Visible {
			continue
		}
		dst = append(dst, DrawDescriptor{
			Coord:         rec.Coord,
			WorldPosition: mgl32.Vec3{float32(rec.WorldX), 0, float32(rec.WorldZ)},
			Geometry:      rec.Geometry.Handle(),
			Attributes:    &rec.Attributes,
			InstanceCount: rec.Attributes.Count,
		})
	}
	out := dst[start:]
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Pack() < out[j].Coord.Pack() })
	return dst
}

// LODParams returns the current shader LOD uniform bundle.
func (e *Engine) LODParams() LODParams {
	return LODParams{
		ObserverX:            e.obsX,
		ObserverZ:            e.obsZ,
		HighDetailDistance:   e.cfg.HighDetailDistance,
		MediumDetailDistance: e.cfg.MediumDetailDistance,
	}
}

// Stats returns a snapshot of the diagnostic counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Resident = e.registry.Len()
	s.Pooled = e.pool.Len()
	return s
}

// Registry exposes the active chunk registry for tests and tooling.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// PoolLen reports the current free-list occupancy.
func (e *Engine) PoolLen() int {
	return e.pool.Len()
}
