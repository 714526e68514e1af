package buylist

import (
	"strings"

	"buylist/internal/model"
)

// Line is one row of a statistics panel.
type Line struct {
	Name     string
	Quantity int
}

// Stats holds the "remaining" and "purchased" panels.
type Stats struct {
	Remaining []Line
	Purchased []Line
}

// Total is the sum of quantities over both panels.
func (s Stats) Total() int {
	n := 0
	for _, l := range s.Remaining {
		n += l.Quantity
	}
	for _, l := range s.Purchased {
		n += l.Quantity
	}
	return n
}

// Aggregate partitions items by purchase state and sums quantities per name.
// Names are grouped by exact trimmed text, so "Milk" and "milk" stay on
// separate lines. Lines keep the order in which a name was first seen.
func Aggregate(items []model.Item) Stats {
	var remaining, purchased group
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if it.Purchased {
			purchased.add(name, it.Quantity)
		} else {
			remaining.add(name, it.Quantity)
		}
	}
	return Stats{Remaining: remaining.lines, Purchased: purchased.lines}
}

type group struct {
	lines []Line
	pos   map[string]int
}

func (g *group) add(name string, qty int) {
	if g.pos == nil {
		g.pos = map[string]int{}
	}
	if i, ok := g.pos[name]; ok {
		g.lines[i].Quantity += qty
		return
	}
	g.pos[name] = len(g.lines)
	g.lines = append(g.lines, Line{Name: name, Quantity: qty})
}
