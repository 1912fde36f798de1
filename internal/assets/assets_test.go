package assets

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestBuiltinImagesDecode(t *testing.T) {
	l := New("")

	tests := []struct {
		name string
		w, h int
	}{
		{"spaceship.png", 72, 48},
		{"starBG.png", 256, 192},
		{"starMG.png", 256, 192},
		{"starFG.png", 256, 192},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := l.LoadImage(tc.name)
			if err != nil {
				t.Fatalf("LoadImage(%q) error = %v", tc.name, err)
			}
			b := img.Bounds()
			if b.Dx() != tc.w || b.Dy() != tc.h {
				t.Errorf("LoadImage(%q) size = %dx%d, expected %dx%d", tc.name, b.Dx(), b.Dy(), tc.w, tc.h)
			}
		})
	}
}

func TestAssetsPrefixAccepted(t *testing.T) {
	l := New("")
	if _, err := l.LoadImage("assets/spaceship.png"); err != nil {
		t.Errorf("LoadImage with assets/ prefix error = %v", err)
	}
}

func TestLoadImageMissing(t *testing.T) {
	l := New("")
	_, err := l.LoadImage("nope.png")
	if !errors.Is(err, ErrAssetLoad) {
		t.Errorf("LoadImage(missing) error = %v, expected ErrAssetLoad", err)
	}
}

func TestLoadImageCorrupt(t *testing.T) {
	override := fstest.MapFS{
		"spaceship.png": &fstest.MapFile{Data: []byte("not a png")},
	}
	l := NewFS(override, Builtin())

	_, err := l.LoadImage("spaceship.png")
	if !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("LoadImage(corrupt) error = %v, expected ErrAssetLoad", err)
	}
}

func TestLayerOrder(t *testing.T) {
	first := fstest.MapFS{"font.ttf": &fstest.MapFile{Data: []byte("first")}}
	second := fstest.MapFS{
		"font.ttf":  &fstest.MapFile{Data: []byte("second")},
		"extra.txt": &fstest.MapFile{Data: []byte("only here")},
	}
	l := NewFS(first, second)

	data, err := l.ReadFile("font.ttf")
	if err != nil || string(data) != "first" {
		t.Errorf("ReadFile(font.ttf) = %q, %v; expected first layer", data, err)
	}

	data, err = l.ReadFile("extra.txt")
	if err != nil || string(data) != "only here" {
		t.Errorf("ReadFile(extra.txt) = %q, %v; expected fallback layer", data, err)
	}

	if !l.Exists("extra.txt") || l.Exists("missing.txt") {
		t.Error("Exists() does not match layer contents")
	}
}

func TestInvalidPath(t *testing.T) {
	l := New("")
	for _, p := range []string{"", "../secret", "assets/"} {
		if _, err := l.ReadFile(p); !errors.Is(err, ErrAssetLoad) {
			t.Errorf("ReadFile(%q) error = %v, expected ErrAssetLoad", p, err)
		}
	}
}
