package image

import (
	"image"
	"image/color"
	"testing"
)

func TestNewRGB(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{name: "valid", width: 4, height: 3},
		{name: "single pixel", width: 1, height: 1},
		{name: "zero width", width: 0, height: 3, wantErr: true},
		{name: "zero height", width: 4, height: 0, wantErr: true},
		{name: "negative", width: -1, height: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewRGB(tt.width, tt.height)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRGB failed: %v", err)
			}
			if m.Width() != tt.width || m.Height() != tt.height {
				t.Errorf("dimensions %dx%d, want %dx%d", m.Width(), m.Height(), tt.width, tt.height)
			}
			if len(m.Pix()) != tt.width*tt.height {
				t.Errorf("pix length %d, want %d", len(m.Pix()), tt.width*tt.height)
			}
		})
	}
}

func TestSetAtMasksToRGB(t *testing.T) {
	m, err := NewRGB(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	m.Set(1, 0, 0xFFAABBCC)
	if got := m.At(1, 0); got != 0xAABBCC {
		t.Errorf("At(1, 0) = %08x, want aabbcc", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("untouched pixel = %06x, want black", got)
	}
}

func TestRowsSharesBacking(t *testing.T) {
	m, err := NewRGB(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	m.Set(0, 2, 0x123456)

	rows := m.Rows(2, 4)
	if len(rows) != 6 {
		t.Fatalf("Rows(2, 4) length %d, want 6", len(rows))
	}
	if rows[0] != 0x123456 {
		t.Errorf("rows[0] = %06x, want 123456", rows[0])
	}

	// Writes through the sub-slice land in the image.
	rows[1] = 0xABCDEF
	if got := m.At(1, 2); got != 0xABCDEF {
		t.Errorf("At(1, 2) = %06x, want abcdef", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := NewRGB(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	m.Set(0, 0, 0x112233)

	c := m.Clone()
	if c.At(0, 0) != 0x112233 {
		t.Fatal("clone did not copy pixels")
	}

	c.Set(0, 0, 0xFFFFFF)
	if m.At(0, 0) != 0x112233 {
		t.Error("modifying the clone changed the original")
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xC8, G: 0x32, B: 0x32, A: 0xFF})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0x32, G: 0x32, B: 0xC8, A: 0xFF})

	m, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if m.At(0, 0) != 0xC83232 || m.At(1, 0) != 0x3232C8 {
		t.Fatalf("pixels %06x, %06x", m.At(0, 0), m.At(1, 0))
	}

	back := m.ToNRGBA()
	if got := back.NRGBAAt(0, 0); got != (color.NRGBA{R: 0xC8, G: 0x32, B: 0x32, A: 0xFF}) {
		t.Errorf("round trip pixel (0,0) = %v", got)
	}
	if got := back.NRGBAAt(1, 0); got != (color.NRGBA{R: 0x32, G: 0x32, B: 0xC8, A: 0xFF}) {
		t.Errorf("round trip pixel (1,0) = %v", got)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	src.SetNRGBA(10, 20, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF})

	m, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if m.Width() != 2 || m.Height() != 1 {
		t.Fatalf("dimensions %dx%d, want 2x1", m.Width(), m.Height())
	}
	if m.At(0, 0) != 0x112233 {
		t.Errorf("At(0, 0) = %06x, want 112233", m.At(0, 0))
	}
}
