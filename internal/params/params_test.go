package params

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
}

func TestMaterialScaleEnds(t *testing.T) {
	p := Default()
	if p.MaterialScale[0] != 0 {
		t.Errorf("bare material should blend fully to endgame, got %d", p.MaterialScale[0])
	}
	if p.MaterialScale[31] != ScaleMax {
		t.Errorf("full material should blend fully to midgame, got %d", p.MaterialScale[31])
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"scale above max", func(p *Params) { p.MaterialScale[31] = 200 }},
		{"scale negative", func(p *Params) { p.MaterialScale[0] = -1 }},
		{"scale decreasing", func(p *Params) { p.MaterialScale[10] = 0 }},
		{"zero piece value", func(p *Params) { p.PieceValues[1] = 0 }},
		{"storm scale", func(p *Params) { p.StormAttackedScale = 129 }},
		{"attack count", func(p *Params) { p.KingAttackMinCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.KnightPST[0] = 999
	if a.KnightPST[0] == 999 {
		t.Error("Clone shares storage with the original")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"weights.json", "weights.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			p := Default()
			p.BishopPair = 55
			p.PassedPawn[1][5] = 140
			if err := p.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if *got != *p {
				t.Error("loaded params differ from saved params")
			}
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"bishop_pair": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.BishopPair != 12 {
		t.Errorf("BishopPair = %d, want 12", p.BishopPair)
	}
	if p.PieceValues != Default().PieceValues {
		t.Error("omitted fields should keep default values")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"material_scale": [300]}`), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected validation error")
	}

	garbled := filepath.Join(dir, "garbled.json.zst")
	os.WriteFile(garbled, []byte("not zstd"), 0o644)
	if _, err := Load(garbled); err == nil {
		t.Error("expected decompression error")
	}
}
