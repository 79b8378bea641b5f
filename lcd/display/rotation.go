package display

// Rotation is one orientation of a panel: the logical size, the controller
// address offsets and the MADCTL flags that produce it.
type Rotation struct {
	Width, Height int
	XGap, YGap    int
	SwapXY        bool
	MirrorX       bool
	MirrorY       bool
}

var rotationTables = [][]Rotation{
	{
		{Width: 320, Height: 480, MirrorX: true},
		{Width: 480, Height: 320, SwapXY: true},
		{Width: 320, Height: 480, MirrorY: true},
		{Width: 480, Height: 320, SwapXY: true, MirrorX: true, MirrorY: true},
	},
	{
		{Width: 240, Height: 320},
		{Width: 320, Height: 240, SwapXY: true, MirrorX: true},
		{Width: 240, Height: 320, MirrorX: true, MirrorY: true},
		{Width: 320, Height: 240, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 170, Height: 320, XGap: 35},
		{Width: 320, Height: 170, YGap: 35, SwapXY: true, MirrorX: true},
		{Width: 170, Height: 320, XGap: 35, MirrorX: true, MirrorY: true},
		{Width: 320, Height: 170, YGap: 35, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 240, Height: 240},
		{Width: 240, Height: 240, SwapXY: true, MirrorX: true},
		{Width: 240, Height: 240, YGap: 80, MirrorX: true, MirrorY: true},
		{Width: 240, Height: 240, XGap: 80, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 135, Height: 240, XGap: 52, YGap: 40},
		{Width: 240, Height: 135, XGap: 40, YGap: 53, SwapXY: true, MirrorX: true},
		{Width: 135, Height: 240, XGap: 53, YGap: 40, MirrorX: true, MirrorY: true},
		{Width: 240, Height: 135, XGap: 40, YGap: 52, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 128, Height: 160},
		{Width: 160, Height: 128, SwapXY: true, MirrorX: true},
		{Width: 128, Height: 160, MirrorX: true, MirrorY: true},
		{Width: 160, Height: 128, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 80, Height: 160, XGap: 26, YGap: 1},
		{Width: 160, Height: 80, XGap: 1, YGap: 26, SwapXY: true, MirrorX: true},
		{Width: 80, Height: 160, XGap: 26, YGap: 1, MirrorX: true, MirrorY: true},
		{Width: 160, Height: 80, XGap: 1, YGap: 26, SwapXY: true, MirrorY: true},
	},
	{
		{Width: 128, Height: 128, XGap: 2, YGap: 1},
		{Width: 128, Height: 128, XGap: 1, YGap: 2, SwapXY: true, MirrorX: true},
		{Width: 128, Height: 128, XGap: 2, YGap: 3, MirrorX: true, MirrorY: true},
		{Width: 128, Height: 128, XGap: 3, YGap: 2, SwapXY: true, MirrorY: true},
	},
}

// Rotations returns a copy of the built-in table whose first entry matches
// width x height. Unknown sizes get the 240x320 table.
func Rotations(width, height int) []Rotation {
	t := rotationTables[1]
	for _, tab := range rotationTables {
		if tab[0].Width == width && tab[0].Height == height {
			t = tab
			break
		}
	}
	return append([]Rotation(nil), t...)
}

func validRotations(t []Rotation) bool {
	if len(t) == 0 {
		return false
	}
	for _, r := range t {
		if r.Width <= 0 || r.Height <= 0 || r.XGap < 0 || r.YGap < 0 || r.XGap > 0xFFFF || r.YGap > 0xFFFF {
			return false
		}
	}
	return true
}

// MemorySize returns the controller memory needed to hold every entry of
// rots at its gap offset.
func MemorySize(rots []Rotation) (cols, rows int) {
	for _, r := range rots {
		c, w := r.Width+r.XGap, r.Height+r.YGap
		if r.SwapXY {
			c, w = r.Height+r.YGap, r.Width+r.XGap
		}
		cols, rows = max(cols, c), max(rows, w)
	}
	return cols, rows
}
