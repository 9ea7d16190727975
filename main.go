package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/floorplan-ai/go-floorplan/inference"
	"github.com/floorplan-ai/go-floorplan/postprocess"
	"github.com/floorplan-ai/go-floorplan/profiler"
	"github.com/floorplan-ai/go-floorplan/raster"
	"github.com/floorplan-ai/go-floorplan/render"
	"github.com/floorplan-ai/go-floorplan/util"
)

const (
	// DefaultModelPath is the ONNX export of the floor-plan model.
	DefaultModelPath = "floorplan.onnx"
	// DefaultOutputDir receives the composited results.
	DefaultOutputDir = "out"
)

func main() {
	var (
		imagePath   string
		imagesDir   string
		modelPath   string
		backend     string
		doPost      bool
		doColor     bool
		outputDir   string
		showTimings bool
	)
	flag.StringVar(&imagePath, "image", "", "Path to a single floor-plan image")
	flag.StringVar(&imagesDir, "images", "", "Directory of floor-plan images to process recursively")
	flag.StringVar(&modelPath, "weight", DefaultModelPath, "Path to the ONNX model file")
	flag.StringVar(&backend, "backend", string(inference.BackendORT), "Inference backend: ort or dnn")
	flag.BoolVar(&doPost, "postprocess", false, "Repair boundaries, fill the footprint, and refine room regions")
	flag.BoolVar(&doColor, "colorize", false, "Emit an RGB image instead of a label image")
	flag.StringVar(&outputDir, "out", DefaultOutputDir, "Output directory for results")
	flag.BoolVar(&showTimings, "timings", false, "Print per-stage timing report after the run")
	flag.Parse()

	if imagePath == "" && imagesDir == "" {
		log.Fatal("one of --image or --images is required")
	}
	if imagePath != "" && imagesDir != "" {
		log.Fatal("--image and --images are mutually exclusive")
	}

	session, err := inference.NewBackend(inference.Config{
		ModelPath: modelPath,
		Backend:   inference.BackendKind(backend),
	})
	if err != nil {
		log.Fatalf("opening model session: %v", err)
	}
	defer session.Close()

	inputs, err := collectInputs(imagePath, imagesDir)
	if err != nil {
		log.Fatalf("collecting inputs: %v", err)
	}
	if len(inputs) == 0 {
		log.Fatalf("no floor-plan images found under %s", imagesDir)
	}

	mode := postprocess.ModeFor(doPost, doColor)
	prof := profiler.NewStageProfiler()
	fmt.Printf("Processing %d image(s), mode=%s, backend=%s\n", len(inputs), mode, backend)

	for _, in := range inputs {
		if err := processOne(session, in, mode, outputDir, prof); err != nil {
			log.Fatalf("%s: %v", in.Path, err)
		}
	}

	if showTimings {
		prof.Report(os.Stdout)
	}
}

// collectInputs resolves the flag pair into a list of images to process.
func collectInputs(imagePath, imagesDir string) ([]util.FloorplanFile, error) {
	if imagesDir != "" {
		return util.LoadFloorplanImages(imagesDir)
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}
	return []util.FloorplanFile{{Path: imagePath, Data: data}}, nil
}

// processOne runs the full pipeline over a single image and persists the
// result under outputDir.
func processOne(
	session inference.Backend,
	in util.FloorplanFile,
	mode postprocess.Mode,
	outputDir string,
	prof *profiler.StageProfiler,
) error {
	src, _, err := image.Decode(bytes.NewReader(in.Data))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", in.Path, err)
	}
	bounds := src.Bounds()
	fmt.Printf("%s: %dx%d\n", in.Path, bounds.Dx(), bounds.Dy())

	stop := prof.StartOperation("inference")
	roomScores, boundaryScores, err := session.Predict(src)
	stop()
	if err != nil {
		return err
	}

	stop = prof.StartOperation("resize")
	roomScores, err = inference.ResizeScores(roomScores, bounds.Dy(), bounds.Dx())
	if err != nil {
		return err
	}
	boundaryScores, err = inference.ResizeScores(boundaryScores, bounds.Dy(), bounds.Dx())
	stop()
	if err != nil {
		return err
	}

	stop = prof.StartOperation("decode")
	room, err := raster.Decode(roomScores)
	if err != nil {
		return err
	}
	boundary, err := raster.Decode(boundaryScores)
	stop()
	if err != nil {
		return err
	}

	stop = prof.StartOperation(mode.String())
	result, err := postprocess.Run(room, boundary, mode)
	stop()
	if err != nil {
		return err
	}

	return saveResult(in.Path, outputDir, result)
}

// saveResult writes the pipeline output as a PNG named after the input.
func saveResult(inputPath, outputDir string, result *postprocess.Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	outPath := filepath.Join(outputDir, base)

	var img image.Image
	if result.RGB != nil {
		img = result.RGB
	} else {
		img = render.ToGray(result.Labels)
	}
	if err := imaging.Save(img, outPath); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}
	fmt.Printf("Result: %s\n", outPath)
	return nil
}
