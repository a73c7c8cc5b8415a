package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/devtools"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/renderer"
	"mvminimap/pkg/game/renderer/ebiten"
	"mvminimap/pkg/game/renderer/termview"
	"mvminimap/pkg/game/renderer/tui"
	"mvminimap/pkg/game/rmmv"
)

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

// openProject opens the project in dir, or writes the developer project to a
// temporary directory when dir is empty.
func openProject(dir string) (*rmmv.Project, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "mvminimap-dev-")
		if err != nil {
			return nil, err
		}
		if err := devtools.WriteDevProject(tmp); err != nil {
			return nil, fmt.Errorf("write dev project: %w", err)
		}
		logger.For("main").WithField("dir", tmp).Info("no project given, using the developer project")
		dir = tmp
	}
	return rmmv.Open(dir)
}

func loadParams(path string) (*config.Params, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newRenderer(ui string, assets *renderer.Assets) (renderer.Renderer, error) {
	switch ui {
	case "ebiten":
		return ebiten.New(assets), nil
	case "tui":
		return tui.New(), nil
	case "term":
		return termview.New(), nil
	}
	return nil, fmt.Errorf("unknown ui %q (want ebiten, tui or term)", ui)
}

// serviceFor answers the dev server's queued requests once per frame.
func serviceFor(srv *devtools.Server) renderer.Service {
	if srv == nil {
		return nil
	}
	return func(p *gameplay.Preview) {
		snap := devtools.Capture(p.Game, p.View(), p.Scene.String())
		srv.Service(func(line string) devtools.Result { return gameplay.RunCommand(p, line) }, snap, p.Capture)
	}
}

func run() error {
	dataDir := flag.String("data", "", "RPG Maker MV project directory (default: a generated developer project)")
	startMap := flag.Int("map", 0, "map to start on instead of the project's start map")
	configPath := flag.String("config", "", "plugin parameters ini file")
	ui := flag.String("ui", "ebiten", "frontend: ebiten, tui or term")
	httpAddr := flag.String("http", "", "serve the debug API on this address, e.g. localhost:8080")
	lang := flag.String("lang", "en", "message language")
	dump := flag.Bool("dump", false, "print one settled frame to stdout and exit")
	flag.Parse()

	logger.Init()
	initGettext(*lang)
	log := logger.For("main")

	params, err := loadParams(*configPath)
	if err != nil {
		return err
	}
	proj, err := openProject(*dataDir)
	if err != nil {
		return err
	}
	g, err := gameplay.BuildGame(proj, params, *startMap)
	if err != nil {
		return err
	}

	assets := renderer.LoadAssets(proj, params.ShadowImage, params.FrameImages)
	p := assets.NewPreview(g)

	if *dump {
		t := tui.New()
		if err := t.Init(); err != nil {
			return err
		}
		tui.Settle(p, nil)
		t.Print(os.Stdout, p)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var srv *devtools.Server
	if *httpAddr != "" {
		srv = devtools.NewServer()
		go func() {
			if err := srv.ListenAndServe(ctx, *httpAddr); err != nil {
				log.WithError(err).Error("debug server stopped")
			}
		}()
	}

	r, err := newRenderer(*ui, assets)
	if err != nil {
		return err
	}
	renderer.SetRenderer(r)
	if err := r.Init(); err != nil {
		return fmt.Errorf("init %s: %w", *ui, err)
	}
	log.WithField("ui", *ui).WithField("map", g.MapID).Info("starting preview")
	return r.Run(p, serviceFor(srv))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
