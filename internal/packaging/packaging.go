package packaging

import (
	"strconv"
	"strings"
)

// Descriptor holds the packaging fields of a product. Every field is optional.
type Descriptor struct {
	Override    *string `json:"packagingOverride,omitempty"`
	PackageType *string `json:"packageType,omitempty"`
	PackQty     *int    `json:"packQty,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	VolumeML    *int    `json:"volumeMl,omitempty"`
	Legacy      *string `json:"packaging,omitempty"`
}

// PackageTypes maps stored package type codes to their display label.
var PackageTypes = map[string]string{
	"thung": "thùng",
	"loc":   "lốc",
	"day":   "dây",
	"ket":   "két",
	"hop":   "hộp",
}

// Units maps stored unit codes to their display label.
var Units = map[string]string{
	"lon":  "lon",
	"chai": "chai",
	"hop":  "hộp",
	"goi":  "gói",
}

// Format returns the display string for d. The override wins, then the
// structured fields, then the legacy free text.
func Format(d Descriptor) string {
	if d.Override != nil {
		if v := strings.TrimSpace(*d.Override); v != "" {
			return *d.Override
		}
	}

	pt, unit := value(d.PackageType), value(d.Unit)
	if pt != "" && unit != "" && d.PackQty != nil && *d.PackQty > 0 && d.VolumeML != nil && *d.VolumeML > 0 {
		return "1 " + label(PackageTypes, pt) + " " + strconv.Itoa(*d.PackQty) + " " + label(Units, unit) + " " + Volume(*d.VolumeML)
	}

	return value(d.Legacy)
}

// Volume renders a millilitre amount, switching to litres from 1000ml.
func Volume(ml int) string {
	if ml < 1000 {
		return strconv.Itoa(ml) + "ml"
	}
	return strconv.FormatFloat(float64(ml)/1000, 'f', -1, 64) + "L"
}

func label(table map[string]string, code string) string {
	if v, ok := table[code]; ok {
		return v
	}
	return code
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
