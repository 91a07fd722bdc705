package board

import "strings"

// Filter is a per-image colour preset. The effect chain behind each preset
// lives with the compositor.
type Filter int

const (
	FilterNone Filter = iota
	FilterVintage
	FilterBright
	FilterContrast
	FilterWarm
	FilterCool
)

var filterNames = [...]string{
	FilterNone:     "none",
	FilterVintage:  "vintage",
	FilterBright:   "bright",
	FilterContrast: "contrast",
	FilterWarm:     "warm",
	FilterCool:     "cool",
}

// Filters lists every preset in declaration order.
func Filters() []Filter {
	return []Filter{FilterNone, FilterVintage, FilterBright, FilterContrast, FilterWarm, FilterCool}
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return filterNames[FilterNone]
	}
	return filterNames[f]
}

// ParseFilter maps a preset name to its Filter. Unknown names give
// FilterNone and ok=false.
func ParseFilter(s string) (f Filter, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range filterNames {
		if name == s {
			return Filter(i), true
		}
	}
	return FilterNone, false
}

func (f Filter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText never fails: an unknown preset behaves as none.
func (f *Filter) UnmarshalText(text []byte) error {
	*f, _ = ParseFilter(string(text))
	return nil
}
