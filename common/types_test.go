package common

import (
	"errors"
	"testing"
)

func TestTextureBufferUploadScoped(t *testing.T) {
	errUpload := errors.New("upload failed")

	testCases := map[string]struct {
		uploadErr error
	}{
		"Success": {},
		"Failure": {uploadErr: errUpload},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			buf := &TextureBuffer{Pixels: make([]byte, 16), Width: 2, Height: 2}
			var seen int
			err := buf.UploadScoped(func(b *TextureBuffer) error {
				seen = len(b.Pixels)
				return tt.uploadErr
			})
			if !errors.Is(err, tt.uploadErr) {
				t.Errorf("expected %v, got %v", tt.uploadErr, err)
			}
			if seen != 16 {
				t.Errorf("upload should see 16 bytes, got %d", seen)
			}
			if !buf.Released() {
				t.Error("buffer should be released after upload")
			}
		})
	}
}

func TestTextureBufferReleasedTwice(t *testing.T) {
	buf := &TextureBuffer{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
	buf.Release()
	buf.Release()
	err := buf.UploadScoped(func(*TextureBuffer) error {
		t.Error("upload should not run on a released buffer")
		return nil
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	var nilBuf *TextureBuffer
	nilBuf.Release()
	if !nilBuf.Released() {
		t.Error("nil buffer should report released")
	}
}

func TestKeyStates(t *testing.T) {
	var k KeyStates
	if k.Down(KeyA) {
		t.Error("zero value should have no keys down")
	}
	k.Press(KeyA)
	k.Press(KeyEscape)
	k.Press(KeyUnknown)
	if !k.Down(KeyA) || !k.Down(KeyEscape) {
		t.Error("pressed keys should be down")
	}
	if k.Count() != 2 {
		t.Errorf("expected 2 keys down, got %d", k.Count())
	}
	k.Release(KeyA)
	if k.Down(KeyA) {
		t.Error("released key should be up")
	}
	k.Reset()
	if k.Count() != 0 {
		t.Errorf("expected no keys down after reset, got %d", k.Count())
	}
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 0, 0)
	b := Vec3(0, 1, 0)
	if c := a.Cross(b); c != Vec3(0, 0, 1) {
		t.Errorf("expected (0,0,1), got %v", c)
	}
	if d := a.Add(b).Sub(a); d != b {
		t.Errorf("expected %v, got %v", b, d)
	}
	if l := Vec3(3, 4, 0).Length(); !near(l, 5, 1e-6) {
		t.Errorf("expected 5, got %v", l)
	}
	if n := Vec3(0, 0, 0).Normalize(); n != Vec3(0, 0, 0) {
		t.Errorf("zero vector should normalize to itself, got %v", n)
	}
	if n := Vec3(0, 0, -2).Normalize(); n != Vec3(0, 0, -1) {
		t.Errorf("expected (0,0,-1), got %v", n)
	}
}
