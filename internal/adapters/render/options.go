package render

// Default image size in pixels.
const (
	defaultWidthPx  = 900
	defaultHeightPx = 500
	minSizePx       = 100
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Values below 100 are ignored.
func WithSize(widthPx, heightPx int) Option {
	return func(r *Renderer) {
		if widthPx >= minSizePx {
			r.widthPx = widthPx
		}
		if heightPx >= minSizePx {
			r.heightPx = heightPx
		}
	}
}
