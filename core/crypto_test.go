package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress(DefaultAdminAddress, "0x4794d0b88f5579117ca8e7ab8ff8b5f95dbd0213"))
	assert.True(t, SameAddress("0x4794D0B88F5579117CA8E7AB8FF8B5F95DBD0213", DefaultAdminAddress))
	assert.False(t, SameAddress(DefaultAdminAddress, "0x0000000000000000000000000000000000000000"))
	assert.False(t, SameAddress("", ""))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(DefaultAdminAddress))
	assert.False(t, IsValidAddress("4794d0B88F5579117Ca8e7ab8FF8b5f95DbD0213"))
	assert.False(t, IsValidAddress("0x1234"))
	assert.False(t, IsValidAddress("con1mu9xruulec4y6hd0d369sdf325l94z4770m33d"))
}

func TestNormalizeSignature(t *testing.T) {
	assert.Equal(t, "0xabcdef", NormalizeSignature("ABCDEF"))
	assert.Equal(t, "0xabcdef", NormalizeSignature(" 0xAbCdEf "))
	assert.Equal(t, "", NormalizeSignature("  "))
}
