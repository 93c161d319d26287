package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Nước Ngọt Đại Lý!":    "nuoc-ngot-dai-ly",
		"  Bia Sài Gòn  ":      "bia-sai-gon",
		"Coca--Cola   330ml":   "coca-cola-330ml",
		"---":                  "",
		"":                     "",
		"Trà Xanh Không Độ ++": "tra-xanh-khong-do",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"Nước Ngọt Đại Lý!", "Bia Hà Nội 450ml", "  __x__ ", "ĐĐĐ", "Sữa tươi TH true MILK"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "", Abbreviate(""))
	assert.Equal(t, "SA", Abbreviate("Sabeco"))
	assert.Equal(t, "DA", Abbreviate("Đại Việt"))
	assert.Equal(t, "7U", Abbreviate(" 7-Up "))
	assert.Equal(t, "A", Abbreviate("à"))
}

func TestAbbreviate_ShortAndUpper(t *testing.T) {
	for _, in := range []string{"Heineken", "ư", "Nước suối Lavie", "!!", "tiger crystal"} {
		out := Abbreviate(in)
		assert.LessOrEqual(t, len(out), 2, "input %q", in)
		assert.Equal(t, strings.ToUpper(out), out, "input %q", in)
	}
}

func TestCleanAbbr(t *testing.T) {
	assert.Equal(t, "NƯ", CleanAbbr("nước ngọt"))
	assert.Equal(t, "BI", CleanAbbr("  bia "))
	assert.Equal(t, "Đ", CleanAbbr("đ"))
	assert.Equal(t, "", CleanAbbr("   "))
}
