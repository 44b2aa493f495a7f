package cli

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Difference is one field whose value differs between two result trees.
type Difference struct {
	Path  string
	Left  any
	Right any
}

func (d Difference) String() string {
	return fmt.Sprintf("%s: %s != %s", d.Path, show(d.Left), show(d.Right))
}

func show(v any) string {
	if v == nil {
		return "<absent>"
	}
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// diffTrees compares two neutral value trees. Paths are dotted, list
// indices included; a value present on one side only is reported at its
// own path with the other side absent.
func diffTrees(left, right any) []Difference {
	var r diffReporter
	cmp.Equal(left, right, cmp.Reporter(&r))
	sort.SliceStable(r.diffs, func(i, j int) bool { return r.diffs[i].Path < r.diffs[j].Path })
	return r.diffs
}

// diffReporter collects unequal leaves reported by cmp.
type diffReporter struct {
	path  cmp.Path
	diffs []Difference
}

func (r *diffReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *diffReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := r.path.Last().Values()
	r.diffs = append(r.diffs, Difference{
		Path:  treePath(r.path),
		Left:  treeValue(vx),
		Right: treeValue(vy),
	})
}

func (r *diffReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

// treePath keeps the map keys and list indices of p.
func treePath(p cmp.Path) string {
	var parts []string
	for _, step := range p {
		switch s := step.(type) {
		case cmp.MapIndex:
			parts = append(parts, fmt.Sprint(s.Key().Interface()))
		case cmp.SliceIndex:
			ix, iy := s.SplitKeys()
			if ix < 0 {
				ix = iy
			}
			parts = append(parts, strconv.Itoa(ix))
		}
	}
	return strings.Join(parts, ".")
}

func treeValue(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Map || v.Kind() == reflect.Slice) && v.IsNil() {
		return nil
	}
	return v.Interface()
}
