package sway

import "github.com/tanema/gween/ease"

// easings maps chart-style easing names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,

	"quadraticIn":    ease.InQuad,
	"quadraticOut":   ease.OutQuad,
	"quadraticInOut": ease.InOutQuad,

	"cubicIn":    ease.InCubic,
	"cubicOut":   ease.OutCubic,
	"cubicInOut": ease.InOutCubic,

	"quarticIn":    ease.InQuart,
	"quarticOut":   ease.OutQuart,
	"quarticInOut": ease.InOutQuart,

	"quinticIn":    ease.InQuint,
	"quinticOut":   ease.OutQuint,
	"quinticInOut": ease.InOutQuint,

	"sinusoidalIn":    ease.InSine,
	"sinusoidalOut":   ease.OutSine,
	"sinusoidalInOut": ease.InOutSine,

	"exponentialIn":    ease.InExpo,
	"exponentialOut":   ease.OutExpo,
	"exponentialInOut": ease.InOutExpo,

	"circularIn":    ease.InCirc,
	"circularOut":   ease.OutCirc,
	"circularInOut": ease.InOutCirc,

	"elasticIn":    ease.InElastic,
	"elasticOut":   ease.OutElastic,
	"elasticInOut": ease.InOutElastic,

	"backIn":    ease.InBack,
	"backOut":   ease.OutBack,
	"backInOut": ease.InOutBack,

	"bounceIn":    ease.InBounce,
	"bounceOut":   ease.OutBounce,
	"bounceInOut": ease.InOutBounce,
}

// Easing returns the easing function registered under name. An empty name
// means linear; unknown names fall back to linear with a debug warning.
func Easing(name string) ease.TweenFunc {
	if name == "" {
		return ease.Linear
	}
	if fn, ok := easings[name]; ok {
		return fn
	}
	debugWarnf("unknown easing %q, using linear", name)
	return ease.Linear
}

// RegisterEasing adds or replaces a named easing function.
func RegisterEasing(name string, fn ease.TweenFunc) {
	easings[name] = fn
}
