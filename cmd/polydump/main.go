// Command polydump decodes an encoded route polyline to lat,lon pairs, or
// encodes pairs read from stdin. Debugging aid for route geometry issues.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"wayfargo/pkg/geo"
	"wayfargo/pkg/polyline"
)

var encode = flag.Bool("encode", false, "read \"lat,lon\" lines from stdin and print the encoded polyline")

func main() {
	flag.Parse()

	if *encode {
		if err := runEncode(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "polydump: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: polydump <polyline> | polydump -encode < points.txt")
		os.Exit(2)
	}

	points := polyline.Decode(flag.Arg(0))
	if len(points) == 0 {
		fmt.Fprintln(os.Stderr, "polydump: no points decoded")
		os.Exit(1)
	}
	for _, p := range points {
		fmt.Printf("%.5f,%.5f\n", p.Lat, p.Lon)
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geo.Distance(points[i-1], points[i])
	}
	fmt.Fprintf(os.Stderr, "%d points, %.0fm\n", len(points), total)
}

func runEncode(f *os.File) error {
	var points []geo.Point
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		var p geo.Point
		if _, err := fmt.Sscanf(line, "%f,%f", &p.Lat, &p.Lon); err != nil {
			return fmt.Errorf("bad point %q: %w", line, err)
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no points on stdin")
	}
	fmt.Println(polyline.Encode(points))
	return nil
}
