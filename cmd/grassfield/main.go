package main

import (
	"flag"
	"runtime"

	"github.com/edaniels/golog"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"grassfield/internal/config"
	"grassfield/internal/render"
	"grassfield/internal/stream"
	"grassfield/internal/terrain"
)

func init() {
	runtime.LockOSThread()
}

var logger = golog.NewDevelopmentLogger("grassfield")

func main() {
	configPath := flag.String("config", "", "path to a YAML engine config; defaults apply when empty")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatalw("bad configuration", "error", err)
		}
	}

	if err := glfw.Init(); err != nil {
		logger.Fatalw("glfw init failed", "error", err)
	}
	closer.Bind(glfw.Terminate)

	window, err := setupWindow()
	if err != nil {
		logger.Fatalw("window setup failed", "error", err)
	}

	ground := terrain.NewHeightField(cfg.Seed)
	provider := render.NewMeshProvider()
	closer.Bind(provider.Dispose)

	engine, err := stream.NewEngine(cfg, provider, ground.HeightAt, logger)
	if err != nil {
		logger.Fatalw("engine setup failed", "error", err)
	}

	grass := render.NewGrass()
	if err := grass.Init(); err != nil {
		logger.Fatalw("renderer setup failed", "error", err)
	}
	closer.Bind(grass.Dispose)

	eye := mgl32.Vec3{0, float32(ground.HeightAt(0, 0)) + 2, 0}
	camera := render.NewCamera(windowWidth, windowHeight, eye)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		camera.SetViewport(w, h)
	})

	loop := newFrameLoop(window, camera, engine, grass, ground)
	loop.run()

	closer.Close()
}
