package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "ข้าว", want: "ข้าว"},
		{name: "trims", in: "  กิน  ", want: "กิน"},
		{name: "collapses whitespace", in: "ฉัน \t กิน\nข้าว", want: "ฉัน กิน ข้าว"},
		{name: "strips zero width space", in: "ข้าว​ผัด", want: "ข้าวผัด"},
		{name: "strips BOM and word joiner", in: "\ufeffแม่⁠", want: "แม่"},
		{name: "empty", in: "", want: ""},
		{name: "only marks", in: "​‌", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  ฉัน ​กิน ข้าว  ", "โทรศัพท์บ้าน", "a‍ b", ""}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{" ข้าว ", "", "​", "กิน"})
	assert.Equal(t, []string{"ข้าว", "กิน"}, got)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("5"))
	assert.True(t, isDigits("2500"))
	assert.True(t, isDigits("๕๕")) // Thai digits
	assert.False(t, isDigits("5บาท"))
	assert.False(t, isDigits("ห้า"))
	assert.False(t, isDigits(""))
}
