package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/nbeckerphoto/colorsort/internal/analysis"
	"github.com/nbeckerphoto/colorsort/internal/collection"
	"github.com/nbeckerphoto/colorsort/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Spectrum strip tile size, one tile per image.
const (
	spectrumTileW = 32
	spectrumTileH = 32
)

type config struct {
	dir       string
	out       string
	algorithm string
	n         int
	heuristic string
	resize    int
	anchor    string
	spectrum  string
	remap     bool
}

func main() {
	// Handle --version before flag parsing so it works without any other
	// arguments.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("colorsort %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// A .env file is optional; flag defaults below read the environment.
	_ = godotenv.Load()

	var cfg config
	flag.StringVar(&cfg.dir, "dir", envOr("COLORSORT_DIR", "."), "directory of images to analyze")
	flag.StringVar(&cfg.out, "out", envOr("COLORSORT_OUT", ""), "directory for sorted copies (empty: print order only)")
	flag.StringVar(&cfg.algorithm, "algorithm", envOr("COLORSORT_ALGORITHM", "hue_dist"), "dominant-color algorithm: hue_dist or kmeans")
	flag.IntVar(&cfg.n, "n", envIntOr("COLORSORT_N", 0), "number of dominant colors per image (0: auto)")
	flag.StringVar(&cfg.heuristic, "heuristic", envOr("COLORSORT_HEURISTIC", "auto_n_hue"), "auto-N heuristic: auto_n_hue, auto_n_binned_hue, or auto_n_hue_deviation")
	flag.IntVar(&cfg.resize, "resize", envIntOr("COLORSORT_RESIZE", 0), "long-axis length for analysis resize (0: native size)")
	flag.StringVar(&cfg.anchor, "anchor", envOr("COLORSORT_ANCHOR", ""), "image name that should lead the color sequence")
	flag.StringVar(&cfg.spectrum, "spectrum", envOr("COLORSORT_SPECTRUM", ""), "path for a dominant-color spectrum strip (PNG or JPEG)")
	flag.BoolVar(&cfg.remap, "remap", false, "also write cluster-remapped reconstructions (kmeans only, needs -out)")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	debug := os.Getenv("COLORSORT_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("colorsort %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(cfg, debug); err != nil {
		log.Fatalf("colorsort: %v", err)
	}
}

func run(cfg config, debug bool) error {
	alg, err := analysis.ParseAlgorithm(cfg.algorithm)
	if err != nil {
		return err
	}
	heur, err := analysis.ParseHeuristic(cfg.heuristic)
	if err != nil {
		return err
	}

	paths, err := imaging.ListImages(cfg.dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", cfg.dir)
	}

	opts := imaging.Options{
		Algorithm:      alg,
		NColors:        cfg.n,
		Heuristic:      heur,
		ResizeLongAxis: cfg.resize,
	}

	images := make([]*imaging.AnalyzedImage, 0, len(paths))
	for _, path := range paths {
		img, err := imaging.New(path, opts)
		if err != nil {
			// One bad file must not sink the batch.
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		for _, d := range img.Diagnostics() {
			log.Printf("%s: %s", img.Name(), d)
		}
		if debug {
			log.Printf("analyzed %s: %s n=%d dominant=%v", img.Name(), img.Algorithm(), img.N(), img.DominantColorHSV())
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return fmt.Errorf("no images analyzed from %s", cfg.dir)
	}

	res := collection.Sort(images, cfg.anchor)
	for _, d := range res.Diagnostics {
		log.Printf("sort: %s", d)
	}

	for _, img := range res.All {
		fmt.Println(img.Summary())
	}

	if cfg.out != "" {
		written, err := imaging.WriteSequence(cfg.out, res.All)
		if err != nil {
			return err
		}
		log.Printf("wrote %d images to %s", len(written), cfg.out)
		if cfg.remap {
			for _, img := range res.All {
				if _, err := imaging.WriteRemapped(cfg.out, img); err != nil {
					log.Printf("remap %s: %v", img.Name(), err)
				}
			}
		}
	} else if cfg.remap {
		log.Printf("-remap needs -out; skipping remap output")
	}

	if cfg.spectrum != "" {
		if err := imaging.WriteSpectrum(cfg.spectrum, res.All, spectrumTileW, spectrumTileH); err != nil {
			return fmt.Errorf("write spectrum: %w", err)
		}
		log.Printf("wrote spectrum strip to %s", cfg.spectrum)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
