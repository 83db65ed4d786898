package main

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/profiling"
	"grassfield/internal/render"
	"grassfield/internal/stream"
	"grassfield/internal/terrain"
)

const (
	moveSpeed        = 12.0
	mouseSensitivity = 0.12
)

// frameLoop drives one engine update and one render per frame.
type frameLoop struct {
	window *glfw.Window
	camera *render.Camera
	engine *stream.Engine
	grass  *render.Grass
	ground *terrain.HeightField

	lastTime         time.Time
	startTime        time.Time
	frames           int
	lastFPSCheckTime time.Time

	lastCursorX float64
	lastCursorY float64
	haveCursor  bool
}

func newFrameLoop(window *glfw.Window, camera *render.Camera, engine *stream.Engine, grass *render.Grass, ground *terrain.HeightField) *frameLoop {
	now := time.Now()
	loop := &frameLoop{
		window:           window,
		camera:           camera,
		engine:           engine,
		grass:            grass,
		ground:           ground,
		lastTime:         now,
		startTime:        now,
		lastFPSCheckTime: now,
	}
	window.SetCursorPosCallback(loop.onCursor)
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return loop
}

func (l *frameLoop) run() {
	for !l.window.ShouldClose() {
		profiling.ResetFrame()

		now := time.Now()
		dt := now.Sub(l.lastTime).Seconds()
		l.lastTime = now

		l.handleMovement(dt)

		pos := l.camera.Position
		l.engine.Update(float64(pos.X()), float64(pos.Z()))

		gl.ClearColor(0.55, 0.78, 0.95, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		l.grass.Render(
			l.camera.ViewMatrix(),
			l.camera.ProjectionMatrix(),
			l.engine,
			now.Sub(l.startTime).Seconds(),
		)

		l.window.SwapBuffers()
		glfw.PollEvents()

		l.frames++
		if since := now.Sub(l.lastFPSCheckTime); since >= 2*time.Second {
			stats := l.engine.Stats()
			fps := float64(l.frames) / since.Seconds()
			l.window.SetTitle(fmt.Sprintf("grassfield | %.0f fps | %d chunks | %d pooled", fps, stats.Resident, stats.Pooled))
			logger.Debugw("frame stats",
				"fps", fmt.Sprintf("%.0f", fps),
				"resident", stats.Resident,
				"pooled", stats.Pooled,
				"reused", stats.Reused,
				"disposed", stats.Disposed,
				"top", profiling.TopN(3),
			)
			l.frames = 0
			l.lastFPSCheckTime = now
		}
	}
}

func (l *frameLoop) handleMovement(dt float64) {
	var forward, right float32
	step := float32(moveSpeed * dt)
	if l.window.GetKey(glfw.KeyW) == glfw.Press {
		forward += step
	}
	if l.window.GetKey(glfw.KeyS) == glfw.Press {
		forward -= step
	}
	if l.window.GetKey(glfw.KeyD) == glfw.Press {
		right += step
	}
	if l.window.GetKey(glfw.KeyA) == glfw.Press {
		right -= step
	}
	l.camera.Move(forward, right, 0)

	// keep the eye a fixed height above the ground
	pos := l.camera.Position
	groundY := float32(l.ground.HeightAt(float64(pos.X()), float64(pos.Z())))
	l.camera.Position = mgl32.Vec3{pos.X(), groundY + 2, pos.Z()}
}

func (l *frameLoop) onCursor(_ *glfw.Window, x, y float64) {
	if !l.haveCursor {
		l.lastCursorX, l.lastCursorY = x, y
		l.haveCursor = true
		return
	}
	dx := float32(x-l.lastCursorX) * mouseSensitivity
	dy := float32(y-l.lastCursorY) * mouseSensitivity
	l.lastCursorX, l.lastCursorY = x, y
	l.camera.Look(dx, dy)
}
