package viz

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Point is a position in the 100x100 artwork viewbox.
type Point struct{ X, Y float64 }

const curveSegments = 16

// ParsePath flattens the subset of SVG path data used by the card artwork
// (M, L, H, V, C, Q, Z and their relative forms) into polylines.
func ParsePath(d string) ([][]Point, error) {
	toks, err := tokenizePath(d)
	if err != nil {
		return nil, err
	}

	var (
		lines      [][]Point
		cur        []Point
		pos, start Point
		cmd        byte
	)
	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	i := 0
	num := func() (float64, error) {
		if i >= len(toks) || toks[i].isCmd {
			return 0, fmt.Errorf("path %q: missing number after %c", d, cmd)
		}
		v := toks[i].num
		i++
		return v, nil
	}
	pt := func(rel bool) (Point, error) {
		x, err := num()
		if err != nil {
			return Point{}, err
		}
		y, err := num()
		if err != nil {
			return Point{}, err
		}
		if rel {
			x, y = x+pos.X, y+pos.Y
		}
		return Point{x, y}, nil
	}

	for i < len(toks) {
		if toks[i].isCmd {
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path %q: number before first command", d)
		}
		rel := cmd >= 'a' && cmd <= 'z'

		switch unicode.ToUpper(rune(cmd)) {
		case 'M':
			p, err := pt(rel)
			if err != nil {
				return nil, err
			}
			flush()
			pos, start = p, p
			cur = []Point{p}
			// further pairs are implicit linetos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			p, err := pt(rel)
			if err != nil {
				return nil, err
			}
			cur = append(cur, p)
			pos = p
		case 'H':
			x, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				x += pos.X
			}
			pos = Point{x, pos.Y}
			cur = append(cur, pos)
		case 'V':
			y, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				y += pos.Y
			}
			pos = Point{pos.X, y}
			cur = append(cur, pos)
		case 'C':
			c1, err := pt(rel)
			if err != nil {
				return nil, err
			}
			c2, err := pt(rel)
			if err != nil {
				return nil, err
			}
			end, err := pt(rel)
			if err != nil {
				return nil, err
			}
			cur = append(cur, cubic(pos, c1, c2, end)...)
			pos = end
		case 'Q':
			c1, err := pt(rel)
			if err != nil {
				return nil, err
			}
			end, err := pt(rel)
			if err != nil {
				return nil, err
			}
			cur = append(cur, quad(pos, c1, end)...)
			pos = end
		case 'Z':
			cur = append(cur, start)
			pos = start
			flush()
			cur = []Point{start}
			cmd = 0
		default:
			return nil, fmt.Errorf("path %q: unsupported command %c", d, cmd)
		}
	}
	flush()
	return lines, nil
}

func cubic(p0, p1, p2, p3 Point) []Point {
	out := make([]Point, 0, curveSegments)
	for s := 1; s <= curveSegments; s++ {
		t := float64(s) / curveSegments
		u := 1 - t
		out = append(out, Point{
			X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
			Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
		})
	}
	return out
}

func quad(p0, p1, p2 Point) []Point {
	out := make([]Point, 0, curveSegments)
	for s := 1; s <= curveSegments; s++ {
		t := float64(s) / curveSegments
		u := 1 - t
		out = append(out, Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
	return out
}

type pathToken struct {
	isCmd bool
	cmd   byte
	num   float64
}

func tokenizePath(d string) ([]pathToken, error) {
	var toks []pathToken
	i := 0
	for i < len(d) {
		ch := d[i]
		switch {
		case ch == ' ' || ch == ',' || ch == '\t' || ch == '\n':
			i++
		case strings.IndexByte("MmLlHhVvCcQqZz", ch) >= 0:
			toks = append(toks, pathToken{isCmd: true, cmd: ch})
			i++
		default:
			j := i
			if d[j] == '-' || d[j] == '+' {
				j++
			}
			for j < len(d) && (d[j] >= '0' && d[j] <= '9' || d[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil || j == i {
				return nil, fmt.Errorf("path %q: bad number at offset %d", d, i)
			}
			toks = append(toks, pathToken{num: v})
			i = j
		}
	}
	return toks, nil
}
