// Command openair validates, summarizes, rewrites and previews OpenAir
// airspace files.
//
//	openair [flags] <file>
//
// Without flags it parses the file and prints a one-line summary per
// airspace. -rewrite emits the file again in canonical form, -at filters
// for airspaces containing a point, and -serve starts the preview server.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/curbz/openair"
	"github.com/curbz/openair/internal/preview"
	"github.com/curbz/openair/pkg/geometry"
	"github.com/curbz/openair/pkg/util"
)

type config struct {
	Preview struct {
		Port string `yaml:"port"`
	} `yaml:"preview"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	rewrite := flag.String("rewrite", "", "write the parsed airspaces back in canonical form to this file")
	serve := flag.Bool("serve", false, "start the preview server after parsing")
	at := flag.String("at", "", "only show airspaces containing this \"lat,lng\" point")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := &config{}
	if *configPath != "" {
		var err error
		cfg, err = util.LoadConfig[config](*configPath)
		if err != nil {
			log.Fatalf("Error reading configuration file: %v", err)
		}
	}
	if cfg.Preview.Port == "" {
		cfg.Preview.Port = "8087"
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			log.Fatalf("Invalid log level %q: %v", cfg.Log.Level, err)
		}
		log.SetLevel(level)
	}

	path := flag.Arg(0)
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error opening airspace file: %v", err)
	}
	defer file.Close()

	start := time.Now()
	airspaces, err := openair.Parse(file)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", path, err)
	}
	log.Infof("Airspace file parsed: %v (count: %d)", time.Since(start), len(airspaces))

	if *at != "" {
		probe, err := parsePoint(*at)
		if err != nil {
			log.Fatalf("Invalid -at point: %v", err)
		}
		airspaces = filterContaining(airspaces, probe)
		log.Infof("%d airspace(s) contain %v", len(airspaces), probe)
	}

	for i := range airspaces {
		a := &airspaces[i]
		bounds := geometry.BoundsOf(a.Geom)
		fmt.Printf("%s\n    lat %.4f..%.4f lng %.4f..%.4f\n",
			a, bounds.MinLat, bounds.MaxLat, bounds.MinLng, bounds.MaxLng)
	}

	if *rewrite != "" {
		out, err := os.Create(*rewrite)
		if err != nil {
			log.Fatalf("Error creating output file: %v", err)
		}
		if err := openair.Write(out, airspaces); err != nil {
			out.Close()
			log.Fatalf("Error writing %s: %v", *rewrite, err)
		}
		if err := out.Close(); err != nil {
			log.Fatalf("Error closing %s: %v", *rewrite, err)
		}
		log.Infof("Canonical rewrite written to %s", *rewrite)
	}

	if *serve {
		srv := preview.Start(cfg.Preview.Port, airspaces)
		defer srv.Close()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		log.Info("Preview server running. Press Ctrl+C to stop.")
		<-interrupt
		log.Info("Interrupt received. Shutting down...")
	}
}

// parsePoint decodes a "lat,lng" decimal degree pair.
func parsePoint(s string) (geometry.Coord, error) {
	latStr, lngStr, found := strings.Cut(s, ",")
	if !found {
		return geometry.Coord{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geometry.Coord{}, fmt.Errorf("bad latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return geometry.Coord{}, fmt.Errorf("bad longitude: %w", err)
	}
	return geometry.Coord{Lat: lat, Lng: lng}, nil
}

func filterContaining(airspaces []openair.Airspace, probe geometry.Coord) []openair.Airspace {
	var matches []openair.Airspace
	for i := range airspaces {
		if geometry.ContainsPoint(airspaces[i].Geom, probe) {
			matches = append(matches, *airspaces[i].Clone())
		}
	}
	return matches
}
