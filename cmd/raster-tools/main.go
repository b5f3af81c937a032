package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/raster-tools/internal/config"
	"github.com/ironsheep/raster-tools/internal/detect"
	"github.com/ironsheep/raster-tools/internal/keypoints"
	"github.com/ironsheep/raster-tools/internal/label"
	"github.com/ironsheep/raster-tools/internal/loader"
	"github.com/ironsheep/raster-tools/internal/pnm"
	"github.com/ironsheep/raster-tools/internal/raster"
	"github.com/ironsheep/raster-tools/internal/regions"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for results)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.LogLevel == "debug" {
		log.Printf("raster-tools v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var err error
	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("raster-tools %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		usage()
	case "convert":
		err = cmdConvert(os.Args[2:])
	case "info":
		err = cmdInfo(os.Args[2:])
	case "label":
		err = cmdLabel(os.Args[2:])
	case "corners":
		err = cmdCorners(os.Args[2:], cfg)
	case "lines":
		err = cmdLines(os.Args[2:], cfg)
	case "keypoints":
		err = cmdKeypoints(os.Args[2:], cfg)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("raster-tools - raster geometry and region analysis")
	fmt.Println()
	fmt.Println("Usage: raster-tools <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  convert <in> <out> [P1-P6]   Convert between PNM variants or to PNG")
	fmt.Println("  info <image>                 Print dimensions, extrema and a colour sample")
	fmt.Println("  label <image> [-8]           Label regions and print their descriptors")
	fmt.Println("  corners <image>              Detect corners (Harris)")
	fmt.Println("  lines <image>                Detect straight lines (Hough)")
	fmt.Println("  keypoints <image>            Extract keypoints via the external tool")
	fmt.Println("  --version, -v                Print version information")
	fmt.Println("  --help, -h                   Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  RASTER_TOOLS_LOG_LEVEL=debug   Enable debug logging")
	fmt.Println("  RASTER_TOOLS_KEYPOINT_TOOL     Keypoint extraction binary (default: sift)")
	fmt.Println("  RASTER_TOOLS_MAX_PEAKS         Cap printed peak lists")
}

// readRaster decodes a PNM file with the bit-exact codec and anything
// else through the general loader.
func readRaster(path string) (*raster.Raster, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pbm", ".pgm", ".ppm", ".pnm":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return pnm.Decode(data)
	}
	return loader.Load(path, loader.Options{})
}

func cmdConvert(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: convert <in> <out> [P1-P6]")
	}
	im, err := readRaster(args[0])
	if err != nil {
		return err
	}

	out := args[1]
	if strings.EqualFold(filepath.Ext(out), ".png") {
		return loader.SavePNG(im, out)
	}

	variant := pnm.P5
	if im.Channels == 3 {
		variant = pnm.P6
	}
	if len(args) > 2 {
		switch strings.ToUpper(args[2]) {
		case "P1":
			variant = pnm.P1
		case "P2":
			variant = pnm.P2
		case "P3":
			variant = pnm.P3
		case "P4":
			variant = pnm.P4
		case "P5":
			variant = pnm.P5
		case "P6":
			variant = pnm.P6
		default:
			return fmt.Errorf("unknown variant %q", args[2])
		}
	}
	data, err := pnm.Encode(im, variant, pnm.Options{})
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: info <image>")
	}
	im, err := readRaster(args[0])
	if err != nil {
		return err
	}
	lo, hi := im.Extrema()
	fmt.Printf("%s: %dx%d, %d channel(s)\n", args[0], im.Width, im.Height, im.Channels)
	fmt.Printf("  range: [%g, %g], mean %.2f\n", lo, hi, im.Mean())
	if sample, err := loader.SampleColor(im, im.Height/2, im.Width/2); err == nil {
		fmt.Printf("  centre pixel: %s (H %.0f S %.2f V %.2f)\n", sample.Hex, sample.H, sample.S, sample.V)
	}
	return nil
}

func cmdLabel(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: label <image> [-8]")
	}
	im, err := readRaster(args[0])
	if err != nil {
		return err
	}
	if im.Channels != 1 {
		if im, err = im.Channel(0); err != nil {
			return err
		}
	}

	conn8 := len(args) > 1 && args[1] == "-8"
	labim, count := label.Regions(im, conn8)
	fmt.Printf("%d region(s)\n", count)
	for _, d := range regions.Describe(labim, count) {
		fmt.Printf("  region %d: area %d, perimeter %d", d.Label, d.Area, d.Perimeter)
		if d.BBox != nil {
			fmt.Printf(", bbox rows [%d,%d) cols [%d,%d)", d.BBox.YLo, d.BBox.YHi, d.BBox.XLo, d.BBox.XHi)
		}
		fmt.Println()
	}
	return nil
}

func cmdCorners(args []string, cfg *config.Config) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: corners <image>")
	}
	im, err := readRaster(args[0])
	if err != nil {
		return err
	}
	if im.Channels != 1 {
		if im, err = im.Channel(0); err != nil {
			return err
		}
	}
	printPeaks(detect.Harris(im, detect.DefaultHarrisOptions()), cfg.MaxPeaks)
	return nil
}

func cmdLines(args []string, cfg *config.Config) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: lines <image>")
	}
	im, err := readRaster(args[0])
	if err != nil {
		return err
	}
	if im.Channels != 1 {
		if im, err = im.Channel(0); err != nil {
			return err
		}
	}
	opts := detect.DefaultHoughOptions()
	opts.MaxPeaks = cfg.MaxPeaks
	res := detect.HoughLines(im, opts)
	for _, p := range res.Peaks {
		fmt.Printf("%4.0f votes: r=%.1f theta=%.3f\n", p.Value, res.RVals[p.Y], res.AVals[p.X])
	}
	return nil
}

func cmdKeypoints(args []string, cfg *config.Config) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: keypoints <image>")
	}
	ex := keypoints.Extractor{Tool: cfg.KeypointTool}
	kps, err := ex.Extract(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%d keypoint(s)\n", len(kps))
	for _, kp := range kps {
		fmt.Printf("  %8.2f %8.2f  scale %.2f  orientation %.3f\n", kp.Y, kp.X, kp.Scale, kp.Orientation)
	}
	return nil
}

func printPeaks(peaks []detect.Peak, max int) {
	if max > 0 && len(peaks) > max {
		peaks = peaks[:max]
	}
	for _, p := range peaks {
		fmt.Printf("%4d %4d: %.2f\n", p.Y, p.X, p.Value)
	}
}
