package crc16_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mavbridge/mavcodec/crc16"
)

func TestKnownAnswers(t *testing.T) {
	require.Equal(t, uint16(0x6F91), crc16.Calculate([]byte("123456789")))
	require.Equal(t, uint16(0xE07D), crc16.Calculate([]byte("Hello, MAVLink!")))
	require.Equal(t, crc16.Seed, crc16.Calculate(nil))
}

func TestTableMatchesPrimitive(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, 0123456789!@#$")
	crc := crc16.Seed
	for _, b := range data {
		crc = crc16.Accumulate(b, crc)
	}
	require.Equal(t, crc, crc16.Calculate(data))
}

func TestCalculateIsFoldOfAccumulate(t *testing.T) {
	for _, s := range [][]byte{
		nil,
		[]byte{0x00},
		[]byte{0xFF, 0x00, 0xAB},
		[]byte("HEARTBEAT"),
	} {
		want := crc16.Seed
		for _, b := range s {
			want = crc16.Accumulate(b, want)
		}
		require.Equal(t, want, crc16.Calculate(s))
	}
}
