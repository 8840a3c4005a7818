package config

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

// TestLoadBundledModels 仓库中所有模型文件都必须能通过验证
func TestLoadBundledModels(t *testing.T) {
	for _, breed := range []string{"dog", "corgi", "dachshund"} {
		t.Run(breed, func(t *testing.T) {
			m, err := LoadPetModelConfig("../../" + ModelPath(breed))
			if err != nil {
				t.Fatalf("load %s: %v", breed, err)
			}
			if m.HitTag != "dog" {
				t.Errorf("hitTag: got %q, want dog", m.HitTag)
			}
			if m.Name != breed {
				t.Errorf("name: got %q, want %q", m.Name, breed)
			}
		})
	}
}

// TestDogModelBounds 默认狗模型包围盒：尾巴到头部
func TestDogModelBounds(t *testing.T) {
	m, err := LoadPetModelConfig("../../data/models/dog.yaml")
	if err != nil {
		t.Fatalf("load dog: %v", err)
	}

	minX, minY, maxX, maxY := m.Bounds()
	// 尾巴末端 -2.5-0.1，鼻尖 1.8+0.08，腿底 -1-0.5，头顶 0.5+0.6
	want := [4]float64{-2.6, -1.5, 1.88, 1.1}
	got := [4]float64{minX, minY, maxX, maxY}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("bounds[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
	if m.Scale != 0.5 {
		t.Errorf("scale: got %v, want 0.5", m.Scale)
	}
}

func TestParsePetModelDefaults(t *testing.T) {
	m, err := ParsePetModelConfig([]byte(`
name: blob
baseColor: "#102030"
parts:
  - { name: body, shape: ellipse, width: 1, height: 1 }
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Scale != 1 {
		t.Errorf("scale default: got %v, want 1", m.Scale)
	}
}

func TestPetModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"无部件", "baseColor: \"#000000\"\n", "no parts"},
		{"颜色无效", "baseColor: red\nparts:\n  - {shape: rect, width: 1, height: 1}\n", "baseColor"},
		{"未知形状", "baseColor: \"#000000\"\nparts:\n  - {shape: star, width: 1, height: 1}\n", "unknown shape"},
		{"椭圆尺寸为零", "baseColor: \"#000000\"\nparts:\n  - {shape: ellipse, width: 0, height: 1}\n", "width and height"},
		{"胶囊半径为零", "baseColor: \"#000000\"\nparts:\n  - {shape: capsule, x2: 1}\n", "radius"},
		{"负缩放", "baseColor: \"#000000\"\nscale: -1\nparts:\n  - {shape: rect, width: 1, height: 1}\n", "scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePetModelConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#8B4513", color.RGBA{0x8b, 0x45, 0x13, 0xff}, false},
		{"ffffff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{" #000000 ", color.RGBA{0, 0, 0, 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if s := FormatHexColor(color.RGBA{0x8b, 0x45, 0x13, 0xff}); s != "#8b4513" {
		t.Errorf("FormatHexColor: got %s", s)
	}
}
