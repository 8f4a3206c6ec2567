package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilelevel/common"
	"github.com/milk9111/tilelevel/level"
	"github.com/milk9111/tilelevel/logging"
	"github.com/milk9111/tilelevel/render"
	"github.com/milk9111/tilelevel/tile"
	"github.com/sirupsen/logrus"
)

type options struct {
	level string
	tiles string

	gen           string
	width, height int

	tile       string
	x, y, w, h int

	preview string
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "", "level image to edit or create")
	flag.StringVar(&opts.tiles, "tiles", "", "tile definitions (yaml); embedded defaults when empty")
	flag.StringVar(&opts.gen, "gen", "", "create the level first: \"checker\" or a .tengo script")
	flag.IntVar(&opts.width, "width", 32, "width in tiles for -gen")
	flag.IntVar(&opts.height, "height", 18, "height in tiles for -gen")
	flag.StringVar(&opts.tile, "tile", "", "tile name to paint")
	flag.IntVar(&opts.x, "x", 0, "left cell")
	flag.IntVar(&opts.y, "y", 0, "top cell")
	flag.IntVar(&opts.w, "w", 1, "cells to paint across")
	flag.IntVar(&opts.h, "h", 1, "cells to paint down")
	flag.StringVar(&opts.preview, "preview", "", "also write a rendered png of the level here")
	logLevel := flag.String("log", "info", "log level")
	flag.Parse()

	logger, closer, err := logging.New(logging.Options{Level: *logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closer.Close()

	if err := run(opts, logger); err != nil {
		logger.WithError(err).Error("paint failed")
		closer.Close()
		os.Exit(1)
	}
}

func run(opts options, log logrus.FieldLogger) error {
	if opts.level == "" {
		return errors.New("-level is required")
	}

	reg := tile.Default()
	if opts.tiles != "" {
		r, err := tile.LoadDefinitionsFile(opts.tiles)
		if err != nil {
			return err
		}
		reg = r
	}

	name := strings.TrimSuffix(filepath.Base(opts.level), filepath.Ext(opts.level))
	l := level.New(name, opts.width, opts.height, reg)
	l.SetLogger(log)

	if opts.gen != "" {
		if err := generate(l, opts.gen); err != nil {
			return err
		}
		if err := l.Bake(formatFor(opts.level)); err != nil {
			return err
		}
		l.SetPath(opts.level)
	} else if err := l.Load(opts.level); err != nil {
		return err
	}

	if opts.tile != "" {
		t, ok := reg.ByName(opts.tile)
		if !ok {
			return fmt.Errorf("unknown tile %q", opts.tile)
		}
		painted := 0
		for y := opts.y; y < opts.y+opts.h; y++ {
			for x := opts.x; x < opts.x+opts.w; x++ {
				if err := l.UpdateTileSheet(x, y, t); err != nil {
					return fmt.Errorf("paint (%d,%d): %w", x, y, err)
				}
				painted++
			}
		}
		log.WithFields(logrus.Fields{"tile": t.Name(), "cells": painted}).Info("painted")
	}

	if err := l.Save(); err != nil {
		return err
	}
	if opts.preview != "" {
		return writePreview(l, opts.preview)
	}
	return nil
}

// writePreview renders the whole level with display colors.
func writePreview(l *level.Level, path string) error {
	r := render.NewRaster(l.Width()*common.TileSize, l.Height()*common.TileSize)
	l.Render(r, 0, 0)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func generate(l *level.Level, gen string) error {
	if gen == "checker" {
		c, err := level.DefaultCheckerboard(l.Registry())
		if err != nil {
			return err
		}
		return l.Generate(c)
	}
	src, err := os.ReadFile(gen)
	if err != nil {
		return err
	}
	return l.Generate(level.NewScriptGenerator(src, l.Registry()))
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}
