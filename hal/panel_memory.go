package hal

import "sync"

// MemoryPanel is a Panel with no device behind it. Flush publishes the working
// framebuffer so that Snapshot (for example a simulator window) can show it.
type MemoryPanel struct {
	mu     sync.Mutex
	work   *Bitmap
	shown  *Bitmap
	frames uint64
}

func NewMemoryPanel(width, height int16) *MemoryPanel {
	return &MemoryPanel{
		work:  NewBitmap(width, height),
		shown: NewBitmap(width, height),
	}
}

func (p *MemoryPanel) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.work.Clear()
	p.shown.Clear()
	return nil
}

func (p *MemoryPanel) Size() (width, height int16) { return p.work.Size() }

func (p *MemoryPanel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.work.Clear()
}

func (p *MemoryPanel) SetPixel(x, y int16, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.work.Set(x, y, on)
}

func (p *MemoryPanel) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown.CopyFrom(p.work)
	p.frames++
	return nil
}

// Snapshot copies the last flushed frame into dst and returns the flush count.
func (p *MemoryPanel) Snapshot(dst *Bitmap) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	dst.CopyFrom(p.shown)
	return p.frames
}

// nullPanel stands in for a board without a display driver.
type nullPanel struct{}

func (nullPanel) Init() error                  { return ErrNotImplemented }
func (nullPanel) Size() (width, height int16)  { return 0, 0 }
func (nullPanel) Clear()                       {}
func (nullPanel) SetPixel(x, y int16, on bool) {}
func (nullPanel) Flush() error                 { return ErrNotImplemented }
