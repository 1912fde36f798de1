package ship

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/assets"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/gfx"
	"github.com/vovakirdan/tui-shooter/internal/logging"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

func TestStanceFor(t *testing.T) {
	tests := []struct {
		dx, dy   float64
		expected Stance
	}{
		{0, -1, UpNorm},
		{1, -1, UpFast},
		{-1, -1, UpSlow},
		{0, 0, MidNorm},
		{1, 0, MidFast},
		{-1, 0, MidSlow},
		{0, 1, DownNorm},
		{1, 1, DownFast},
		{-1, 1, DownSlow},
	}

	for _, tc := range tests {
		got, err := StanceFor(tc.dx, tc.dy)
		if err != nil {
			t.Errorf("StanceFor(%v, %v) error = %v", tc.dx, tc.dy, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("StanceFor(%v, %v) = %v, expected %v", tc.dx, tc.dy, got, tc.expected)
		}
	}
}

func TestStanceForNaN(t *testing.T) {
	nan := math.NaN()
	for _, d := range [][2]float64{{nan, 0}, {0, nan}, {nan, nan}} {
		if _, err := StanceFor(d[0], d[1]); !errors.Is(err, ErrUnreachableStance) {
			t.Errorf("StanceFor(%v, %v) error = %v, expected ErrUnreachableStance", d[0], d[1], err)
		}
	}
}

func TestStanceString(t *testing.T) {
	if MidNorm.String() != "mid-norm" || DownSlow.String() != "down-slow" {
		t.Errorf("names = %q, %q", MidNorm, DownSlow)
	}
	if Stance(42).String() != "stance(42)" {
		t.Errorf("out of range = %q", Stance(42))
	}
}

func testSheet() gfx.Sprite {
	return gfx.NewSprite(image.NewRGBA(image.Rect(0, 0, 72, 48)))
}

func TestNewShip(t *testing.T) {
	bounds := core.NewRect(0, 0, 224, 192)
	s, err := NewShip(testSheet(), 3, 3, 64, 64, 180, bounds)
	if err != nil {
		t.Fatalf("NewShip() error = %v", err)
	}
	if s.Rect() != core.NewRect(64, 64, 24, 16) {
		t.Errorf("Rect() = %v", s.Rect())
	}
	if s.Stance() != MidNorm {
		t.Errorf("initial stance = %v", s.Stance())
	}

	if _, err := NewShip(testSheet(), 2, 2, 0, 0, 180, bounds); err == nil {
		t.Error("NewShip() should reject a grid that is not nine frames")
	}
	if _, err := NewShip(testSheet(), 3, 3, 0, 0, 180, core.NewRect(0, 0, 10, 10)); err == nil {
		t.Error("NewShip() should reject bounds smaller than a frame")
	}
}

func TestShipUpdate(t *testing.T) {
	bounds := core.NewRect(0, 0, 224, 192)
	diag := 90 / math.Sqrt2

	tests := []struct {
		name   string
		in     Controls
		dx, dy float64
		stance Stance
	}{
		{"idle", Controls{}, 0, 0, MidNorm},
		{"right", Controls{Right: true}, 90, 0, MidFast},
		{"left", Controls{Left: true}, -90, 0, MidSlow},
		{"up", Controls{Up: true}, 0, -90, UpNorm},
		{"down right", Controls{Down: true, Right: true}, diag, diag, DownFast},
		{"up left", Controls{Up: true, Left: true}, -diag, -diag, UpSlow},
		{"opposites cancel", Controls{Left: true, Right: true}, 0, 0, MidNorm},
		{"opposite vertical with left", Controls{Up: true, Down: true, Left: true}, -90, 0, MidSlow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewShip(testSheet(), 3, 3, 100, 100, 180, bounds)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Update(tc.in, 0.5); err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			r := s.Rect()
			if math.Abs(r.X-(100+tc.dx)) > 1e-9 || math.Abs(r.Y-(100+tc.dy)) > 1e-9 {
				t.Errorf("position = (%v, %v), expected (%v, %v)", r.X, r.Y, 100+tc.dx, 100+tc.dy)
			}
			if s.Stance() != tc.stance {
				t.Errorf("stance = %v, expected %v", s.Stance(), tc.stance)
			}
		})
	}
}

func TestShipStaysInBounds(t *testing.T) {
	bounds := core.NewRect(0, 0, 224, 192)
	s, err := NewShip(testSheet(), 3, 3, 200, 10, 180, bounds)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if err := s.Update(Controls{Up: true, Right: true}, 0.1); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !bounds.Contains(s.Rect()) {
			t.Fatalf("step %d: ship %v left bounds %v", i, s.Rect(), bounds)
		}
	}
	// Pinned to the top-right corner of the movable region.
	if r := s.Rect(); r.X != 200 || r.Y != 0 {
		t.Errorf("ship = %v, expected pinned at (200, 0)", r)
	}
	// Stance follows intended motion even when blocked.
	if s.Stance() != UpFast {
		t.Errorf("stance = %v, expected up-fast", s.Stance())
	}
}

func newTestContext(t *testing.T, cfg config.Config) *engine.Context {
	t.Helper()
	return engine.NewContext(cfg, nil, assets.New(""), logging.Discard())
}

func TestViewConstruction(t *testing.T) {
	ctx := newTestContext(t, config.Default())

	v, err := New(ctx)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(v.behind) != 2 || len(v.front) != 1 {
		t.Errorf("layers = %d behind, %d front; expected 2 and 1", len(v.behind), len(v.front))
	}
	if b := v.Player().Bounds(); b.W != 320*0.7 || b.H != 192 {
		t.Errorf("movable region = %v, expected 70%% of width", b)
	}
}

func TestViewConstructionMissingAsset(t *testing.T) {
	cfg := config.Default()
	cfg.Ship.Sheet = "missing.png"

	if _, err := New(newTestContext(t, cfg)); !errors.Is(err, assets.ErrAssetLoad) {
		t.Errorf("New() error = %v, expected ErrAssetLoad", err)
	}

	cfg = config.Default()
	cfg.Backgrounds[0].Path = "nope.png"
	if _, err := New(newTestContext(t, cfg)); !errors.Is(err, assets.ErrAssetLoad) {
		t.Errorf("New() error = %v, expected ErrAssetLoad", err)
	}
}

func TestViewStep(t *testing.T) {
	ctx := newTestContext(t, config.Default())
	v, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}

	ctx.Events.Inject(core.KeyDownEvent(core.KeyRight))
	action, err := v.Step(ctx, 0.1)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if action.Kind() != engine.ActionContinue {
		t.Errorf("Step() = %v, expected continue", action.Kind())
	}
	if v.Player().Rect().X != 64+18 {
		t.Errorf("ship x = %v, expected %v", v.Player().Rect().X, 64+18)
	}

	// Held state persists without new events.
	ctx.Events.Inject()
	if _, err := v.Step(ctx, 0.1); err != nil {
		t.Fatal(err)
	}
	if v.Player().Rect().X != 64+36 {
		t.Errorf("ship x = %v after holding, expected %v", v.Player().Rect().X, 64+36)
	}

	for i, layer := range v.behind {
		if layer.Phase() == 0 {
			t.Errorf("background %d did not scroll", i)
		}
	}
}

func TestViewQuits(t *testing.T) {
	tests := []struct {
		name  string
		event core.Event
	}{
		{"escape", core.KeyDownEvent(core.KeyEscape)},
		{"close", core.QuitEvent()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newTestContext(t, config.Default())
			v, err := New(ctx)
			if err != nil {
				t.Fatal(err)
			}
			ctx.Events.Inject(tc.event)
			action, err := v.Step(ctx, 0.016)
			if err != nil || action.Kind() != engine.ActionQuit {
				t.Errorf("Step() = %v, %v; expected quit", action.Kind(), err)
			}
		})
	}
}

func TestViewHitbox(t *testing.T) {
	cfg := config.Default()
	cfg.Ship.ShowHitbox = true
	cfg.Backgrounds = nil
	ctx := newTestContext(t, cfg)

	v, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Step(ctx, 0); err != nil {
		t.Fatal(err)
	}

	// The frame corners of the generated sheet are transparent.
	r := v.Player().Rect()
	if got := ctx.Surface.At(int(r.X), int(r.Y)); got != core.ColorYellow {
		t.Errorf("hitbox corner = %v, expected yellow", got)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("view %q should register itself", ID)
	}
	v, err := registry.Create(ID, newTestContext(t, config.Default()))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, ok := v.(*View); !ok {
		t.Errorf("Create() = %T", v)
	}
}
