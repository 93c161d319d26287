package packaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestFormat_OverrideWins(t *testing.T) {
	d := Descriptor{
		Override:    str("Thùng 24 lon 330ml"),
		PackageType: str("ket"),
		PackQty:     num(20),
		Unit:        str("chai"),
		VolumeML:    num(450),
		Legacy:      str("legacy"),
	}
	assert.Equal(t, "Thùng 24 lon 330ml", Format(d))
}

func TestFormat_BlankOverrideFallsThrough(t *testing.T) {
	d := Descriptor{Override: str("   "), Legacy: str("Lốc 6 lon")}
	assert.Equal(t, "Lốc 6 lon", Format(d))
}

func TestFormat_Structured(t *testing.T) {
	d := Descriptor{PackageType: str("ket"), PackQty: num(20), Unit: str("chai"), VolumeML: num(450)}
	assert.Equal(t, "1 két 20 chai 450ml", Format(d))
}

func TestFormat_UnmappedCodesPassThrough(t *testing.T) {
	d := Descriptor{PackageType: str("bao"), PackQty: num(2), Unit: str("tui"), VolumeML: num(1000)}
	assert.Equal(t, "1 bao 2 tui 1L", Format(d))
}

func TestFormat_IncompleteStructuredUsesLegacy(t *testing.T) {
	d := Descriptor{PackageType: str("thung"), PackQty: num(0), Unit: str("lon"), VolumeML: num(330), Legacy: str("Thùng 24")}
	assert.Equal(t, "Thùng 24", Format(d))
}

func TestFormat_Fallback(t *testing.T) {
	assert.Equal(t, "Lốc 6 lon", Format(Descriptor{Legacy: str("Lốc 6 lon")}))
	assert.Equal(t, "", Format(Descriptor{}))
}

func TestVolume(t *testing.T) {
	cases := map[int]string{999: "999ml", 1000: "1L", 1500: "1.5L", 1250: "1.25L", 330: "330ml"}
	for ml, want := range cases {
		assert.Equal(t, want, Volume(ml), "volume %d", ml)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	d := Descriptor{PackageType: str("thung"), PackQty: num(24), Unit: str("lon"), VolumeML: num(330)}
	first := Format(d)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Format(d))
	}
}
