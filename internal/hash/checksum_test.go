package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		expected uint64
	}{
		{"empty payload", nil, 0xef46db3751d8e999},
		{"short payload", []byte("test"), 0x4fdcca5ddb678139},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Checksum(tt.payload))
			assert.True(t, Verify(tt.payload, tt.expected))
		})
	}
}

func TestVerify_DetectsSingleBitFlip(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	sum := Checksum(payload)

	payload[2048] ^= 0x10
	assert.False(t, Verify(payload, sum))
}
