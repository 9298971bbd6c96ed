// Package mapview draws the city catalog and the current path as text.
package mapview

import (
	"fmt"
	"math"
	"strings"
	"vendepass-client/internal/domain"
)

const (
	glyphEmpty  = ' '
	glyphCity   = '·'
	glyphTrack  = '*'
	glyphStop   = 'o'
	glyphSource = 'A'
	glyphDest   = 'B'

	minWidth  = 12
	minHeight = 6
)

type Options struct {
	Width  int
	Height int
	// Center, when set, is drawn in the middle of the grid and the
	// bounding box grows symmetrically around it.
	Center *domain.Coordinates
}

// Render projects cities and path onto a Width x Height character grid and
// appends a legend with each segment's distance.
func Render(cities []domain.City, path domain.Path, opt Options) string {
	grid := Grid(cities, path, opt)

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	for _, line := range Legend(path) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Grid returns the map rows without the legend.
func Grid(cities []domain.City, path domain.Path, opt Options) [][]rune {
	w := max(opt.Width, minWidth)
	h := max(opt.Height, minHeight)

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(glyphEmpty), w))
	}

	points := make([]domain.Coordinates, 0, len(cities)+2*len(path))
	for _, c := range cities {
		points = append(points, c.Coordinates())
	}
	segments := make([][2]domain.Coordinates, 0, len(path))
	for _, seg := range path {
		src, dest, ok := seg.Endpoints()
		if !ok {
			continue
		}
		segments = append(segments, [2]domain.Coordinates{src.Coordinates(), dest.Coordinates()})
		points = append(points, src.Coordinates(), dest.Coordinates())
	}
	if len(points) == 0 {
		return grid
	}

	p := newProjection(points, w, h)
	if opt.Center != nil {
		p = p.centeredOn(*opt.Center)
	}

	for _, s := range segments {
		x0, y0 := p.cell(s[0])
		x1, y1 := p.cell(s[1])
		line(x0, y0, x1, y1, func(x, y int) { grid[y][x] = glyphTrack })
	}
	for _, c := range cities {
		x, y := p.cell(c.Coordinates())
		grid[y][x] = glyphCity
	}
	for i, s := range segments {
		x, y := p.cell(s[0])
		if i == 0 {
			grid[y][x] = glyphSource
		} else {
			grid[y][x] = glyphStop
		}
	}
	if n := len(segments); n > 0 {
		x, y := p.cell(segments[n-1][1])
		grid[y][x] = glyphDest
	}

	return grid
}

// Legend lists each segment with its flight id and great-circle distance.
func Legend(path domain.Path) []string {
	if len(path) == 0 {
		return []string{"Nenhuma rota selecionada."}
	}

	lines := make([]string, 0, len(path)+1)
	for i, seg := range path {
		src, dest, ok := seg.Endpoints()
		if !ok {
			lines = append(lines, fmt.Sprintf("%d. voo %s (trecho incompleto)", i+1, seg.FlightId))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s → %s  %.0f km  [%s]", i+1, src.Name, dest.Name, seg.DistanceKm(), seg.FlightId))
	}
	lines = append(lines, fmt.Sprintf("Total: %.0f km em %d trecho(s)", path.DistanceKm(), len(path)))
	return lines
}

// Equirectangular fit of a lat/lon box onto the grid.
type projection struct {
	minLat, maxLat float64
	minLon, maxLon float64
	w, h           int
}

func newProjection(points []domain.Coordinates, w, h int) projection {
	p := projection{
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		minLon: math.Inf(1), maxLon: math.Inf(-1),
		w: w, h: h,
	}
	for _, c := range points {
		p.minLat = math.Min(p.minLat, c.Lat)
		p.maxLat = math.Max(p.maxLat, c.Lat)
		p.minLon = math.Min(p.minLon, c.Lon)
		p.maxLon = math.Max(p.maxLon, c.Lon)
	}

	// a single point still needs a non-zero span
	if p.maxLat-p.minLat < 1e-6 {
		p.minLat -= 0.5
		p.maxLat += 0.5
	}
	if p.maxLon-p.minLon < 1e-6 {
		p.minLon -= 0.5
		p.maxLon += 0.5
	}
	return p
}

// centeredOn widens the box so c sits at its midpoint.
func (p projection) centeredOn(c domain.Coordinates) projection {
	halfLat := math.Max(p.maxLat-c.Lat, c.Lat-p.minLat)
	halfLon := math.Max(p.maxLon-c.Lon, c.Lon-p.minLon)
	p.minLat, p.maxLat = c.Lat-halfLat, c.Lat+halfLat
	p.minLon, p.maxLon = c.Lon-halfLon, c.Lon+halfLon
	return p
}

func (p projection) cell(c domain.Coordinates) (x, y int) {
	fx := (c.Lon - p.minLon) / (p.maxLon - p.minLon)
	fy := (p.maxLat - c.Lat) / (p.maxLat - p.minLat)
	x = clamp(int(math.Round(fx*float64(p.w-1))), 0, p.w-1)
	y = clamp(int(math.Round(fy*float64(p.h-1))), 0, p.h-1)
	return x, y
}

// line walks the cells between two points with Bresenham's algorithm.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
