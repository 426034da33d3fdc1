// Package main runs the image file service as a long-lived daemon. It
// resolves the paths given on the command line, starts the service, and
// consumes the event stream until shutdown, requesting a thumbnail for
// every discovered or modified file so decode failures surface early.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"

	"imview/internal/codec"
	"imview/internal/fileservice"
	"imview/internal/imagetypes"
	"imview/internal/logging"
	"imview/internal/startup"
)

func main() {
	startTime := time.Now()

	cfg, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	if cfg.VipsEnabled {
		if err := codec.InitVips(); err != nil {
			logging.Warn("libvips unavailable, falling back to pure-Go decoding: %v", err)
		} else {
			defer codec.ShutdownVips()
		}
	}

	svc, err := fileservice.Start(os.Args[1:], fileservice.Options{
		DebounceWindow:   cfg.DebounceWindow,
		ThumbnailWorkers: cfg.ThumbnailWorkers,
		ImageWorkers:     cfg.ImageWorkers,
	}, nil)
	if err != nil {
		logging.Fatal("Failed to start file service: %v", err)
	}

	root, watching := svc.Root()
	startup.LogServiceStarted(root, time.Since(startTime))

	if cfg.MetricsEnabled {
		go serveMetrics(cfg.MetricsPort)
	}

	go handleSignals(svc, watching)

	consumeEvents(svc, cfg.ThumbnailSize)
	logging.Info("Event stream closed, exiting")
}

// consumeEvents drains the service stream until it closes. Interactive
// runs log every event; under a pipe or service manager only failures
// are reported.
func consumeEvents(svc *fileservice.Service, thumbnailSize int) {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for ev := range svc.Events() {
		if ev.IsFileChange() {
			if interactive {
				if ev.Type == fileservice.EventRenamed {
					logging.Info("%s: %s -> %s", changeLabel(ev.Type), ev.OldPath, ev.Path)
				} else {
					logging.Info("%s: %s", changeLabel(ev.Type), ev.Path)
				}
			}
			if ev.Type == fileservice.EventAdded || ev.Type == fileservice.EventModified {
				svc.ReadThumbnail(ev.Path, thumbnailSize)
			}
			continue
		}

		switch ev.Type {
		case fileservice.EventThumbnailLoaded:
			if ev.Err != nil {
				logging.Warn("Thumbnail failed for %s: %v", ev.Path, ev.Err)
			} else if interactive {
				b := ev.Image.Bounds()
				logging.Info("Thumbnail ready: %s (%dx%d)", ev.Path, b.Dx(), b.Dy())
			}
		case fileservice.EventImageLoaded:
			if ev.Err != nil {
				logging.Warn("Load failed for %s: %v", ev.Path, ev.Err)
			} else if interactive {
				b := ev.Image.Bounds()
				logging.Info("Image ready: %s (%dx%d)", ev.Path, b.Dx(), b.Dy())
			}
		}
	}
}

func changeLabel(t fileservice.EventType) string {
	switch t {
	case fileservice.EventAdded:
		return "Added"
	case fileservice.EventModified:
		return "Modified"
	case fileservice.EventRemoved:
		return "Removed"
	case fileservice.EventRenamed:
		return "Renamed"
	}
	return "Changed"
}

// handleSignals waits for SIGINT or SIGTERM and shuts the service down.
// Without an active watch the event stream has no closing edge, so the
// process exits here directly once shutdown is recorded.
func handleSignals(svc *fileservice.Service, watching bool) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs

	startup.LogShutdownInitiated(sig.String())
	svc.Shutdown()

	if !watching {
		os.Exit(0)
	}
}

func serveMetrics(port string) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	r.HandleFunc("/formats", formatsHandler).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info("Metrics server listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Error("Metrics server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": startup.Version,
	})
}

// formatsHandler reports the recognized file extensions and their MIME
// types, so operators can check what the service will pick up.
func formatsHandler(w http.ResponseWriter, _ *http.Request) {
	formats := make(map[string]string, len(imagetypes.Extensions))
	for ext := range imagetypes.Extensions {
		formats[ext] = imagetypes.GetMimeType(ext)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(formats)
}
