// Command croptest crops a region from a gel image, rebases its kDa
// markers, and prints the resulting annotation layout.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"gel-annotator/internal/crop"
	gelimage "gel-annotator/internal/image"
	"gel-annotator/internal/marker"
	"gel-annotator/internal/render"
	"gel-annotator/pkg/geometry"
	"gel-annotator/ui/canvas"
)

func main() {
	imagePath := flag.String("image", "", "Path to gel image (TIFF, PNG, or JPEG)")
	outPath := flag.String("out", "crop.png", "Output path for the cropped image")
	rect := flag.String("rect", "", "Crop rectangle in scene coordinates: x,y,w,h")
	markerSpec := flag.String("markers", "", "Ladder markers as y:kDa pairs, e.g. 40:250,95:150")
	leftMargin := flag.Float64("margin", render.DefaultParams().LeftMargin, "Gutter width left of the gel")
	flag.Parse()

	if *imagePath == "" || *rect == "" {
		fmt.Println("Usage: croptest -image <path> -rect x,y,w,h [-markers y:kDa,...] [-margin 60] [-out crop.png]")
		os.Exit(1)
	}

	layer, err := gelimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s: %dx%d pixels\n", *imagePath, layer.Width(), layer.Height())
	if layer.DPI > 0 {
		fmt.Printf("DPI: %.0f\n", layer.DPI)
	}

	selection, err := parseRect(*rect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -rect: %v\n", err)
		os.Exit(1)
	}

	markers, err := parseMarkers(*markerSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -markers: %v\n", err)
		os.Exit(1)
	}

	placement := geometry.Point2D{X: *leftMargin}
	result := crop.Crop(layer.Image, selection, placement, markers)

	bounds := result.Image.Bounds()
	if bounds.Empty() {
		fmt.Println("Selection missed the gel; nothing cropped")
		os.Exit(0)
	}
	fmt.Printf("\nCropped %dx%d pixels, %d markers survive:\n", bounds.Dx(), bounds.Dy(), len(result.Markers))

	params := render.Params{
		LeftMargin: *leftMargin,
		TickLength: render.DefaultParams().TickLength,
		LabelGap:   render.DefaultParams().LabelGap,
	}
	instrs := render.LayoutAll(result.Markers, params, canvas.MeasureLabel)
	fmt.Printf("%-10s %12s %12s %14s\n", "Label", "TickStart", "TickEnd", "LabelOrigin")
	for _, in := range instrs {
		fmt.Printf("%-10s (%5.1f,%5.1f) (%5.1f,%5.1f)  (%5.1f,%5.1f)\n",
			in.Text,
			in.TickStart.X, in.TickStart.Y,
			in.TickEnd.X, in.TickEnd.Y,
			in.LabelOrigin.X, in.LabelOrigin.Y)
	}

	if err := imaging.Save(result.Image, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved %s\n", *outPath)
}

// parseRect parses "x,y,w,h" into a scene-frame rectangle.
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Rect{}, err
		}
		vals[i] = v
	}
	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

// parseMarkers parses "y:kDa,y:kDa,..." into ladder markers.
func parseMarkers(s string) ([]marker.Marker, error) {
	if s == "" {
		return nil, nil
	}
	var markers []marker.Marker
	for _, pair := range strings.Split(s, ",") {
		fields := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("want y:kDa, got %q", pair)
		}
		y, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		kda, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		markers = append(markers, marker.Marker{Y: y, KDa: kda})
	}
	return markers, nil
}
