package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"arshapes/internal/app"
	"arshapes/internal/config"
	"arshapes/internal/env"
	"arshapes/internal/fonts"
	"arshapes/internal/graphics"
	"arshapes/internal/logger"
	"arshapes/internal/viewer"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file")
	envPath := flag.String("env", ".env", "environment file loaded before the settings")
	preflight := flag.Bool("preflight", false, "run the device check and material pipelines without a window, then exit")
	flag.Parse()

	if err := env.Load(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using defaults\n", err)
	}
	cfg.ApplyEnv(os.Getenv)

	log := logger.New(cfg.LogFile)
	a, err := app.New(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *preflight {
		err := a.Preflight(context.Background(), os.Stderr)
		a.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if !a.CheckDevice(os.Stderr) {
		os.Exit(1)
	}
	if err := a.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	var fontPath string
	if cfg.UI.Font != "" {
		p, err := fonts.Find(cfg.UI.Font)
		switch {
		case err == nil:
			fontPath = p
		case errors.Is(err, os.ErrNotExist):
			log.Logf("font %q not found, using the built-in font", cfg.UI.Font)
		default:
			log.Logf("font %q: %v", cfg.UI.Font, err)
		}
	}

	v := viewer.New(viewer.Options{
		Log:        log,
		Session:    a.Session,
		Placer:     a.Placer,
		Shapes:     a.Shapes,
		Materials:  a.Materials,
		Slots:      a.Loader.Slots(),
		CSSPath:    cfg.UI.CSS,
		FontPath:   fontPath,
		DropHeight: cfg.Placement.DropHeight,
	})
	v.Debug().SetShowFPS(cfg.Debug.ShowFPS)
	v.Debug().SetShowPlanes(cfg.Debug.ShowPlanes)
	graphics.Run(cfg.Window, v.Update, v.Draw, v.Close)
}
