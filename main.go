// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

var supportedFormats = map[string]bool{"svg": true, "legend": true, "html": true, "png": true, "jpg": true, "jpeg": true, "json": true}

// jsonOutput is what the "json" format writes.
type jsonOutput struct {
	Timeline []string `json:"timeline"`
	Controls Controls `json:"controls"`
	Current  Frame    `json:"current"`
	Frames   []Frame  `json:"frames"`
}

// --- Main Program Logic ---

func main() { // NOSONAR
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Argument Parsing using flag package ---
	outputFile := flag.String("o", "", "Output file path (default: stdout)")
	templateFile := flag.String("t", cfg.TemplateFile, "Map template file (.json, .yaml or .yml)")
	year := flag.String("year", "", "Select the attribute for this year (or attribute key)")
	index := flag.Int("index", -1, "Select the attribute at this timeline index")
	steps := flag.String("steps", "", "Sequence steps to apply after selection, e.g. \"next,next,prev\"")
	fetchTimeout := flag.Duration("timeout", cfg.FetchTimeout, "Timeout for fetching remote data")
	flag.Parse()

	// Get positional arguments (data, format) after flags
	args := flag.Args()
	var dataSource, exportFormat string
	switch {
	case len(args) == 2:
		dataSource, exportFormat = args[0], args[1]
	case len(args) == 1 && cfg.DataSource != "":
		dataSource, exportFormat = cfg.DataSource, args[0]
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <data.geojson|url> <format>\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nArguments:")
		fmt.Fprintln(os.Stderr, "  <data.geojson|url> GeoJSON FeatureCollection file or http(s) URL (or set PROPMAP_DATA).")
		fmt.Fprintln(os.Stderr, "  <format>            Output format (svg, legend, html, png, jpg/jpeg, json).")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	exportFormat = strings.ToLower(exportFormat)

	// --- Input Validation ---
	if !supportedFormats[exportFormat] {
		log.Fatalf("Unsupported export format '%s'. Supported formats: svg, legend, html, png, jpg/jpeg, json", exportFormat)
	}

	template, err := loadTemplate(*templateFile)
	if err != nil {
		log.Fatalf("Template error: %v", err)
	}

	// --- Data Loading ---
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), *fetchTimeout)
	data, err := loadFeatureCollection(loadCtx, dataSource, newFetchConfig(*fetchTimeout, cfg.FetchRetries))
	cancelLoad()
	if err != nil {
		log.Fatalf("Error loading data: %v", err)
	}

	// --- Selection ---
	view := newMapView(data, template.Symbol)
	if seq := view.Sequence(); seq != nil {
		selectAttribute(seq, *year, *index, *steps)
		log.Printf("Selected attribute %s (%d of %d).", seq.Current(), seq.Index()+1, seq.Timeline().Len())
	}

	// --- Determine Output Writer ---
	var outputWriter io.Writer = os.Stdout
	if *outputFile != "" {
		log.Printf("Output directed to file: %s", *outputFile)
		outFile, err := os.Create(*outputFile)
		if err != nil {
			log.Fatalf("Error creating output file '%s': %v", *outputFile, err)
		}
		defer func() {
			if closeErr := outFile.Close(); closeErr != nil {
				log.Printf("Error closing output file '%s': %v", *outputFile, closeErr)
			}
		}()
		outputWriter = outFile
	}

	// --- Generation ---
	log.Printf("Generating output for format: %s", exportFormat)
	renderCtx, cancelRender := context.WithTimeout(context.Background(), cfg.RenderTimeout)
	defer cancelRender()

	if genErr := render(renderCtx, exportFormat, template, view, outputWriter); genErr != nil {
		if *outputFile != "" {
			log.Printf("Attempting to remove potentially incomplete file: %s", *outputFile)
			if removeErr := os.Remove(*outputFile); removeErr != nil {
				log.Printf("Warning: Could not remove output file '%s' after error: %v", *outputFile, removeErr)
			}
		}
		log.Fatalf("Error generating %s: %v", exportFormat, genErr)
	}

	log.Printf("Successfully generated %s output.", strings.ToUpper(exportFormat))
	if *outputFile != "" {
		log.Printf("Output saved to: %s", *outputFile)
	}
}

// selectAttribute applies -year / -index / -steps. Bad selections are
// logged by the sequence and leave the previous selection in place.
func selectAttribute(seq *Sequence, year string, index int, steps string) {
	if year != "" {
		_ = seq.Seek(year)
	}
	if index >= 0 {
		_ = seq.SetIndex(index)
	}
	if steps != "" {
		if err := seq.Apply(steps); err != nil {
			log.Printf("Warning: step script stopped early: %v", err)
		}
	}
}

// render writes the selected frame (or all frames) in the given format.
func render(ctx context.Context, format string, template MapTemplate, view *MapView, w io.Writer) error {
	switch format {
	case "svg":
		svgContent, err := GenerateSVG(template, view.Current())
		if err != nil {
			return fmt.Errorf("SVG generation failed: %w", err)
		}
		if _, err := io.WriteString(w, svgContent); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
	case "legend":
		if _, err := io.WriteString(w, GenerateLegendSVG(template, view.Current())); err != nil {
			return fmt.Errorf("failed to write legend output: %w", err)
		}
	case "html":
		outputString, err := generateHTML(template, view)
		if err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		if _, err := io.WriteString(w, outputString); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	case "png", "jpg", "jpeg":
		svgContent, err := GenerateSVG(template, view.Current())
		if err != nil {
			return fmt.Errorf("failed to generate intermediate SVG: %w", err)
		}
		return generateImage(ctx, svgContent, format, w)
	case "json":
		out := jsonOutput{
			Timeline: view.Timeline().Keys(),
			Controls: view.Controls(),
			Current:  view.Current(),
			Frames:   view.Frames(),
		}
		data, err := json.Marshal(out, jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format '%s'", format)
	}
	return nil
}
