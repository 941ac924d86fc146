package main

import (
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/olablt/gio-mapdemo/camera"
	"github.com/olablt/gio-mapdemo/config"
	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/mapview"
	"github.com/olablt/gio-mapdemo/places"
	"github.com/olablt/gio-mapdemo/screen"
	"github.com/olablt/gio-mapdemo/state"
	"github.com/olablt/gio-mapdemo/tiles"
	"github.com/olablt/gio-mapdemo/tiles/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	go func() {
		if err := run(cfg, log); err != nil {
			log.Error("window closed", logging.Err(err))
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(cfg config.Config, log logging.Logger) error {
	w := new(app.Window)
	w.Option(
		app.Title(cfg.Window.Title),
		app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
	)

	refresh := make(chan struct{}, 1)
	go func() {
		for range refresh {
			w.Invalidate()
		}
	}()

	pool := worker.NewPool(cfg.Tiles.Workers,
		worker.WithQueueSize(4*cfg.Tiles.CacheSize),
		worker.WithTimeout(cfg.Tiles.Timeout),
	)
	defer pool.Shutdown()
	layers := buildLayers(cfg, pool, refresh, log)

	numbering, err := state.ParseNumbering(cfg.Pins.TitleMode)
	if err != nil {
		return err
	}
	store := state.NewStore(state.WithNumbering(numbering), state.WithLogger(log.With(logging.String("component", "state"))))

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	view := mapview.New(layers, refresh, log)
	view.Theme = th
	view.MinZoom = cfg.Map.MinZoom
	view.MaxZoom = cfg.Map.MaxZoom
	defer view.Unmount()

	cam := camera.New(view, log)
	defer cam.Close()

	base := mapview.Options{
		InitialRegion:    places.InitialRegion(),
		ShowUserLocation: cfg.Map.ShowUserLocation,
		ShowBuildings:    true,
		ShowIndoors:      true,
		ShowCompass:      true,
		ShowScale:        true,
		RotateEnabled:    true,
		PitchEnabled:     true,
	}
	if loc, ok := cfg.Map.Location(); ok {
		base.UserLocation = &loc
	}
	scr := screen.New(th, store, view, cam, base, log)

	log.Info("map demo started",
		logging.String("center", places.Home.String()),
		logging.Any("offline", cfg.Map.Offline),
	)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			scr.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// buildLayers wires a tile manager per layer. Offline mode serves the
// generated placeholder tiles only.
func buildLayers(cfg config.Config, pool *worker.Pool, refresh chan<- struct{}, log logging.Logger) mapview.Layers {
	onLoad := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
	newLayer := func(name string, primary tiles.Provider, fallback tiles.Provider) *tiles.Manager {
		opts := []tiles.ManagerOption{
			tiles.WithCacheSize(cfg.Tiles.CacheSize),
			tiles.WithLogger(log),
		}
		if fallback != nil {
			opts = append(opts, tiles.WithFallback(fallback))
		}
		m := tiles.NewManager(name, primary, pool, opts...)
		m.SetOnLoadCallback(onLoad)
		log.Debug("tile layer ready", logging.String("layer", m.Name()), logging.Any("fallback", fallback != nil))
		return m
	}
	remote := func(url string) tiles.Provider {
		return tiles.NewURLProvider(url, cfg.Tiles.UserAgent, cfg.Tiles.Timeout)
	}

	streets := tiles.NewLocalProvider(tiles.StreetPalette)
	imagery := tiles.NewLocalProvider(tiles.ImageryPalette)
	if cfg.Map.Offline {
		return mapview.Layers{
			Standard:  newLayer("standard", streets, nil),
			Satellite: newLayer("satellite", imagery, nil),
		}
	}

	layers := mapview.Layers{
		Standard:  newLayer("standard", remote(cfg.Tiles.StandardURL), streets),
		Satellite: newLayer("satellite", remote(cfg.Tiles.SatelliteURL), imagery),
	}
	if cfg.Tiles.LabelsURL != "" {
		layers.Labels = newLayer("labels", remote(cfg.Tiles.LabelsURL), nil)
	}
	if cfg.Tiles.TrafficURL != "" {
		layers.Traffic = newLayer("traffic", remote(cfg.Tiles.TrafficURL), nil)
	} else {
		log.Info("no traffic tile source configured; traffic toggle has no visible layer")
	}
	return layers
}
