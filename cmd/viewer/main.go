package main

import (
	"os"

	"camviewer/internal/app"
	"camviewer/internal/config"
	"camviewer/internal/logger"
	"camviewer/internal/vision/opencv"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()
	log := logger.NewLogger(cfg)
	defer log.Close()

	index, err := app.ParseCameraIndex(args, cfg.CameraIndex)
	if err != nil {
		log.Error("Usage: viewer [camera-index]: %v", err)
		return 1
	}

	application := app.NewApp(cfg, log, opencv.Backend{})
	if _, err := application.Run(index); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
