package codec

// rgbColor is an RGB triple used to resolve LedConstant's named-color
// convenience inputs at the tool surface layer.
type rgbColor struct{ R, G, B int }

// namedColors maps the color names the tool surface accepts for constant-RGB
// LED control to their RGB triples.
var namedColors = map[string]rgbColor{
	"red":        {255, 0, 0},
	"green":      {0, 255, 0},
	"blue":       {0, 0, 255},
	"white":      {255, 255, 255},
	"warm_white": {255, 214, 170},
	"cool_white": {201, 226, 255},
	"yellow":     {255, 255, 0},
	"cyan":       {0, 255, 255},
	"magenta":    {255, 0, 255},
	"purple":     {128, 0, 128},
	"orange":     {255, 165, 0},
	"pink":       {255, 105, 180},
}

// LookupNamedColor resolves a named color to its RGB triple.
func LookupNamedColor(name string) (int, int, int, error) {
	c, ok := namedColors[name]
	if !ok {
		return 0, 0, 0, rangeError("led_color", "unknown color name: "+name)
	}
	return c.R, c.G, c.B, nil
}

// breatheColorCodes maps the color names valid for breathe/one-shot LED
// effects to the firmware's single-byte color code. The breathe and
// one-shot effects run from the firmware's fixed color table, not
// arbitrary RGB, so only these seven names are valid.
var breatheColorCodes = map[string]int{
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"cyan":    5,
	"magenta": 6,
	"white":   7,
}

// LookupBreatheColorCode resolves a named color to the firmware's breathe
// color code (1..7).
func LookupBreatheColorCode(name string) (int, error) {
	code, ok := breatheColorCodes[name]
	if !ok {
		return 0, rangeError("led_color", "unknown breathe color name: "+name)
	}
	return code, nil
}
