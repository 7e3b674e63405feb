package rules

import (
	"slices"
	"strings"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
)

// orderException pulls a property out of alphabetical order and places it
// right after its anchor, when the anchor is declared in the same block.
type orderException struct {
	anchor string
	rank   int
}

var orderExceptions = map[string]orderException{
	"top":    {anchor: "position", rank: 1},
	"right":  {anchor: "position", rank: 2},
	"bottom": {anchor: "position", rank: 3},
	"left":   {anchor: "position", rank: 4},
}

type orderKey struct {
	group  string // unprefixed name, or the anchor for exceptions
	rank   int    // 0 for the anchor itself
	vendor int    // 0 for prefixed variants, 1 for the standard property
	name   string
}

func (a orderKey) compare(b orderKey) int {
	if c := strings.Compare(a.group, b.group); c != 0 {
		return c
	}
	if a.rank != b.rank {
		return a.rank - b.rank
	}
	if a.vendor != b.vendor {
		return a.vendor - b.vendor
	}
	return strings.Compare(a.name, b.name)
}

func keyOf(d *ast.Declaration, present map[string]bool) orderKey {
	base := d.Unprefixed()
	k := orderKey{group: base, vendor: 1, name: d.NameLower()}
	if d.VendorPrefix() != "" {
		k.vendor = 0
	}
	if ex, ok := orderExceptions[base]; ok && present[ex.anchor] {
		k.group, k.rank = ex.anchor, ex.rank
	}
	return k
}

// ExpectedOrder returns decls in canonical order: alphabetical by unprefixed
// name, vendor-prefixed variants right above the standard property, and the
// order exceptions grouped after their anchor. Equal keys keep input order.
func ExpectedOrder(decls []*ast.Declaration) []*ast.Declaration {
	present := make(map[string]bool, len(decls))
	for _, d := range decls {
		present[d.Unprefixed()] = true
	}
	out := slices.Clone(decls)
	slices.SortStableFunc(out, func(a, b *ast.Declaration) int {
		return keyOf(a, present).compare(keyOf(b, present))
	})
	return out
}

// Anchored returns the declarations of seq that directly follow their order
// anchor (or another anchored declaration). The formatter indents them one
// extra level.
func Anchored(seq []*ast.Declaration) map[*ast.Declaration]bool {
	out := map[*ast.Declaration]bool{}
	anchor := ""
	for _, d := range seq {
		name := d.NameLower()
		if ex, ok := orderExceptions[name]; ok && anchor == ex.anchor {
			out[d] = true
			continue
		}
		anchor = name
	}
	return out
}

// shorthands lists the longhands a shorthand resets when the names alone do
// not show it. A shorthand also resets every property named shorthand-*.
var shorthands = map[string][]string{
	"font":          {"line-height"},
	"inset":         {"top", "right", "bottom", "left"},
	"gap":           {"row-gap", "column-gap"},
	"grid-gap":      {"grid-row-gap", "grid-column-gap"},
	"grid-area":     {"grid-row-start", "grid-row-end", "grid-column-start", "grid-column-end"},
	"grid":          {"row-gap", "column-gap"},
	"columns":       {"column-width", "column-count"},
	"flex-flow":     {"flex-direction", "flex-wrap"},
	"place-content": {"align-content", "justify-content"},
	"place-items":   {"align-items", "justify-items"},
	"place-self":    {"align-self", "justify-self"},
	"white-space":   {"white-space-collapse", "text-wrap", "text-wrap-mode"},
	"border-color": {
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color",
	},
	"border-style": {
		"border-top-style", "border-right-style", "border-bottom-style", "border-left-style",
	},
	"border-width": {
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
	},
	"border-radius": {
		"border-top-left-radius", "border-top-right-radius",
		"border-bottom-right-radius", "border-bottom-left-radius",
		"border-start-start-radius", "border-start-end-radius",
		"border-end-start-radius", "border-end-end-radius",
	},
	"border-block-color":  {"border-block-start-color", "border-block-end-color"},
	"border-block-style":  {"border-block-start-style", "border-block-end-style"},
	"border-block-width":  {"border-block-start-width", "border-block-end-width"},
	"border-inline-color": {"border-inline-start-color", "border-inline-end-color"},
	"border-inline-style": {"border-inline-start-style", "border-inline-end-style"},
	"border-inline-width": {"border-inline-start-width", "border-inline-end-width"},
	"contain-intrinsic-size": {
		"contain-intrinsic-width", "contain-intrinsic-height",
		"contain-intrinsic-block-size", "contain-intrinsic-inline-size",
	},
	"block-size":      {"height", "width"},
	"inline-size":     {"height", "width"},
	"min-block-size":  {"min-height", "min-width"},
	"min-inline-size": {"min-height", "min-width"},
	"max-block-size":  {"max-height", "max-width"},
	"max-inline-size": {"max-height", "max-width"},
}

// resets reports whether setting shorthand overwrites longhand.
func resets(shorthand, longhand string) bool {
	if shorthand == "all" {
		return !strings.HasPrefix(longhand, "--") && longhand != "direction" && longhand != "unicode-bidi"
	}
	if strings.HasPrefix(shorthand, "--") {
		return false
	}
	if strings.HasPrefix(longhand, shorthand+"-") {
		return true
	}
	return slices.Contains(shorthands[shorthand], longhand)
}

// flowSides holds the side keywords of property names, true for physical
// sides and false for flow-relative ones.
var flowSides = map[string]bool{
	"top": true, "right": true, "bottom": true, "left": true,
	"block": false, "inline": false, "start": false, "end": false,
}

// flowGroup returns the property name with its side keywords replaced, and
// whether the name is physical (top/right/bottom/left) or flow-relative
// (block/inline/start/end). ok is false when the name has no side.
func flowGroup(name string) (group string, physical, ok bool) {
	switch name {
	case "top", "right", "bottom", "left":
		return "inset-*", true, true
	}
	parts := strings.Split(name, "-")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		phys, side := flowSides[part]
		if !side {
			out = append(out, part)
			continue
		}
		ok = true
		physical = phys
		if len(out) == 0 || out[len(out)-1] != "*" {
			out = append(out, "*")
		}
	}
	if !ok || strings.HasPrefix(name, "--") {
		return "", false, false
	}
	return strings.Join(out, "-"), physical, true
}

// Overlaps reports whether two properties can set the same computed value,
// so their relative order decides which one wins. Names are lowercased and
// unprefixed.
func Overlaps(a, b string) bool {
	if a == b {
		return false
	}
	if resets(a, b) || resets(b, a) {
		return true
	}
	ga, pa, oka := flowGroup(a)
	gb, pb, okb := flowGroup(b)
	return oka && okb && ga == gb && pa != pb
}

// SafeToReorder reports whether sorting decls into ExpectedOrder keeps the
// relative order of every pair of overlapping properties, so the cascade
// resolves the same way.
func SafeToReorder(decls []*ast.Declaration) bool {
	rank := make(map[*ast.Declaration]int, len(decls))
	for i, d := range ExpectedOrder(decls) {
		rank[d] = i
	}
	for i, a := range decls {
		for _, b := range decls[i+1:] {
			if rank[a] > rank[b] && Overlaps(a.Unprefixed(), b.Unprefixed()) {
				return false
			}
		}
	}
	return true
}

func checkPropertyOrder(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, b := range sheet.Blocks() {
		decls := b.Decls()
		want := ExpectedOrder(decls)
		for i, d := range decls {
			if d == want[i] {
				continue
			}
			out = append(out, warn(config.CheckPropertyOrder, d.Loc.Start,
				"property %q is out of order, expected %q", d.Property, want[i].Property))
			break
		}
	}
	return out
}
