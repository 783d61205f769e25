package render

import "image/color"

// Ramp is a multi-stop linear color scale over [0,1].
type Ramp struct {
	Stops []color.RGBA
}

// At interpolates the ramp at t, clamping out-of-range values.
func (r Ramp) At(t float64) color.RGBA {
	if len(r.Stops) == 0 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	if len(r.Stops) == 1 || t <= 0 {
		return r.Stops[0]
	}
	if t >= 1 {
		return r.Stops[len(r.Stops)-1]
	}

	span := t * float64(len(r.Stops)-1)
	i := int(span)
	f := span - float64(i)
	a, b := r.Stops[i], r.Stops[i+1]

	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
}

// Viridis approximates the perceptually uniform scale of the same name.
var Viridis = Ramp{Stops: []color.RGBA{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}}

// Terrain runs from deep blue through green to white, useful for elevation
// style grids.
var Terrain = Ramp{Stops: []color.RGBA{
	{R: 0, G: 48, B: 143, A: 255},
	{R: 52, G: 152, B: 219, A: 255},
	{R: 46, G: 139, B: 87, A: 255},
	{R: 222, G: 184, B: 135, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}}
