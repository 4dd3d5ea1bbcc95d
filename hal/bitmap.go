package hal

// Bitmap is a 1bpp image stored row-major, eight pixels per byte (MSB first).
type Bitmap struct {
	width  int16
	height int16
	stride int
	bits   []byte
}

func NewBitmap(width, height int16) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (int(width) + 7) / 8
	return &Bitmap{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]byte, stride*int(height)),
	}
}

func (b *Bitmap) Size() (width, height int16) { return b.width, b.height }

func (b *Bitmap) inside(x, y int16) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set changes one pixel. Coordinates outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int16, on bool) {
	if !b.inside(x, y) {
		return
	}
	off := int(y)*b.stride + int(x)/8
	mask := byte(0x80) >> (uint(x) % 8)
	if on {
		b.bits[off] |= mask
	} else {
		b.bits[off] &^= mask
	}
}

// Get reports whether a pixel is lit. Coordinates outside the bitmap read as off.
func (b *Bitmap) Get(x, y int16) bool {
	if !b.inside(x, y) {
		return false
	}
	off := int(y)*b.stride + int(x)/8
	return b.bits[off]&(byte(0x80)>>(uint(x)%8)) != 0
}

func (b *Bitmap) Clear() {
	for i := range b.bits {
		b.bits[i] = 0
	}
}

// Lit counts the pixels that are on.
func (b *Bitmap) Lit() int {
	n := 0
	for _, v := range b.bits {
		for ; v != 0; v &= v - 1 {
			n++
		}
	}
	return n
}

// CopyFrom overwrites b with src. Both bitmaps must have the same size.
func (b *Bitmap) CopyFrom(src *Bitmap) {
	if src == nil || src.width != b.width || src.height != b.height {
		return
	}
	copy(b.bits, src.bits)
}
