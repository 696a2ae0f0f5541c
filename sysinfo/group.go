package sysinfo

import "strings"

// Pair is one labelled value of a MetricGroup.
type Pair struct {
	Label string
	Value string
}

// MetricGroup is an ordered set of label/value pairs. Insertion order is the
// display order; labels are unique within a group.
type MetricGroup struct {
	pairs []Pair
}

// NewMetricGroup builds a group from alternating label, value arguments.
// A trailing label without a value is ignored.
func NewMetricGroup(kv ...string) *MetricGroup {
	g := &MetricGroup{}
	for i := 0; i+1 < len(kv); i += 2 {
		g.Add(kv[i], kv[i+1])
	}
	return g
}

// Add appends a pair. Re-adding an existing label replaces its value in place.
func (g *MetricGroup) Add(label, value string) *MetricGroup {
	for i := range g.pairs {
		if g.pairs[i].Label == label {
			g.pairs[i].Value = value
			return g
		}
	}
	g.pairs = append(g.pairs, Pair{Label: label, Value: value})
	return g
}

// Get returns the value stored under label.
func (g *MetricGroup) Get(label string) (string, bool) {
	if g == nil {
		return "", false
	}
	for _, p := range g.pairs {
		if p.Label == label {
			return p.Value, true
		}
	}
	return "", false
}

func (g *MetricGroup) Len() int {
	if g == nil {
		return 0
	}
	return len(g.pairs)
}

// Pairs returns a copy of the pairs in display order.
func (g *MetricGroup) Pairs() []Pair {
	if g == nil {
		return nil
	}
	out := make([]Pair, len(g.pairs))
	copy(out, g.pairs)
	return out
}

// Blank reports whether every value in the group is empty or whitespace.
// An empty group is blank.
func (g *MetricGroup) Blank() bool {
	for _, p := range g.Pairs() {
		if strings.TrimSpace(p.Value) != "" {
			return false
		}
	}
	return true
}
