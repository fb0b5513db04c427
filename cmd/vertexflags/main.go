// Command vertexflags flags polygon boundary segments shorter than a
// distance threshold, writing segment midpoints as a point layer and a
// per-polygon statistics table (acres, vertex count, average and
// minimum segment length, multipart flag).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/gisops/go-polygon-qa/config"
	"github.com/gisops/go-polygon-qa/geojson"
	"github.com/gisops/go-polygon-qa/msg"
	"github.com/gisops/go-polygon-qa/scan"
	"github.com/gisops/go-polygon-qa/shapefile"
	"github.com/gisops/go-polygon-qa/spatial"
)

func main() {
	godotenv.Load()

	var (
		in       = flag.String("in", "", "input polygon FeatureCollection (GeoJSON)")
		minDist  = flag.Float64("distance", 1.0, "segment length below which vertices are flagged, in working units")
		outSR    = flag.String("sr", "", "optional output coordinate reference name")
		out      = flag.String("out", "", "output workspace directory")
		cfgPath  = flag.String("config", os.Getenv("QA_CONFIG"), "optional yaml config file")
		validate = flag.Bool("validate", false, "run a GEOS validity pre-check on the input")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "vertexflags -in features.json -distance 1.0 [-sr name] [-out dir]")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	console := msg.NewConsole(cfg.Spinner)

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("ERROR: reading %s: %v", *in, err)
	}
	fc, err := geojson.Parse(data)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	working, err := normalize(cfg, *outSR)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	console.Message(fmt.Sprintf("Using output coordinate system: %s (%s)", working.Ref.Name, working.Unit), msg.Info)

	if *validate || cfg.Validate {
		for _, issue := range geojson.CheckValidity(fc) {
			console.Message(fmt.Sprintf("polygon #%d: %s", issue.ID, issue.Reason), msg.Warning)
		}
	}

	source, err := geojson.FromCollection(fc, working)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	console.Message(fmt.Sprintf("Processing all %s polygons in '%s'...",
		msg.Count(source.Count()), filepath.Base(*in)), msg.Info)

	workspace := workspaceDir(cfg, *out, *in)
	layers, err := shapefile.NewVertexLayers(workspace, *minDist, working.Unit)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	run := scan.VertexRun{
		Source:   source,
		Points:   layers,
		Stats:    layers,
		Messages: console,
		MinDist:  *minDist,
		Working:  working,
	}
	runErr := run.Run()
	if err := layers.Close(); runErr == nil && err != nil {
		runErr = err
	}
	if runErr != nil {
		log.Fatalf("ERROR: %v", runErr)
	}
}

func normalize(cfg *config.Config, outSR string) (*spatial.Working, error) {
	input, ok := cfg.Lookup(cfg.InputReference)
	if !ok {
		return nil, fmt.Errorf("unknown input reference %q", cfg.InputReference)
	}
	var output *spatial.Ref
	if outSR != "" {
		ref, ok := cfg.Lookup(outSR)
		if !ok {
			return nil, fmt.Errorf("unknown output reference %q", outSR)
		}
		output = &ref
	}
	return spatial.Normalize(input, output)
}

func workspaceDir(cfg *config.Config, flagOut, in string) string {
	if flagOut != "" {
		return flagOut
	}
	if cfg.Workspace != "" {
		return cfg.Workspace
	}
	return filepath.Dir(in)
}
