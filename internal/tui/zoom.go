package tui

// Zoom tracks the browser's text scale. Changes are clamped to [Min, Max];
// a control whose direction is exhausted is reported as disabled.
type Zoom struct {
	Min, Max, Step int
	Level          int
}

// NewZoom returns a Zoom starting at level, clamped into range.
func NewZoom(min, max, step, level int) *Zoom {
	if step <= 0 {
		step = 1
	}
	if max < min {
		max = min
	}
	z := &Zoom{Min: min, Max: max, Step: step}
	z.Level = z.clamp(level)
	return z
}

func (z *Zoom) clamp(v int) int {
	if v < z.Min {
		return z.Min
	}
	if v > z.Max {
		return z.Max
	}
	return v
}

// In grows the level by one step and reports whether it changed.
func (z *Zoom) In() bool {
	next := z.clamp(z.Level + z.Step)
	changed := next != z.Level
	z.Level = next
	return changed
}

// Out shrinks the level by one step and reports whether it changed.
func (z *Zoom) Out() bool {
	next := z.clamp(z.Level - z.Step)
	changed := next != z.Level
	z.Level = next
	return changed
}

func (z *Zoom) CanIn() bool  { return z.Level < z.Max }
func (z *Zoom) CanOut() bool { return z.Level > z.Min }

// CellWidth is the display width of a cell covering span columns.
func (z *Zoom) CellWidth(span int) int {
	if span < 1 {
		span = 1
	}
	return z.Level * span
}
