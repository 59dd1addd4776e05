package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mavbridge/mavcodec/dialect"
	"github.com/mavbridge/mavcodec/schema"
	"github.com/mavbridge/mavcodec/wire"
)

const attitudeXML = `<?xml version="1.0"?>
<mavlink>
  <messages>
    <message id="30" name="ATTITUDE">
      <field type="uint32_t" name="time_boot_ms"/>
      <field type="float" name="roll"/>
      <field type="float" name="pitch"/>
      <extensions/>
      <field type="float[2]" name="ext_covariance"/>
    </message>
    <message id="0" name="HEARTBEAT">
      <field type="uint32_t" name="custom_mode"/>
      <field type="uint8_t" name="type"/>
      <field type="char[4]" name="tag"/>
    </message>
  </messages>
</mavlink>`

func compiledMessage(t *testing.T, id uint32) *schema.MessageSchema {
	t.Helper()
	resolver := func(name string) ([]byte, error) { return []byte(attitudeXML), nil }
	bundle, err := dialect.Load(resolver, "attitude.xml", false)
	require.NoError(t, err)
	cat, err := schema.Compile(bundle)
	require.NoError(t, err)
	msg, ok := cat.Message(id)
	require.True(t, ok)
	return msg
}

func TestRoundTripBaseAndExtendedFields(t *testing.T) {
	msg := compiledMessage(t, 30)

	values := map[string]any{
		"time_boot_ms":   uint32(123456),
		"roll":            float32(0.5),
		"pitch":           float32(-1.25),
		"ext_covariance": []float32{1, 2},
	}
	buf, err := wire.WritePayload(msg, values, msg.MaxPayloadLength)
	require.NoError(t, err)
	require.Len(t, buf, msg.MaxPayloadLength)

	decoded, err := wire.ReadPayload(msg, buf)
	require.NoError(t, err)
	require.Equal(t, values["time_boot_ms"], decoded["time_boot_ms"])
	require.Equal(t, values["roll"], decoded["roll"])
	require.Equal(t, values["pitch"], decoded["pitch"])
	require.Equal(t, values["ext_covariance"], decoded["ext_covariance"])
}

func TestReadPayloadZeroPadsTruncatedExtensions(t *testing.T) {
	msg := compiledMessage(t, 30)

	values := map[string]any{
		"time_boot_ms": uint32(1),
		"roll":         float32(1),
		"pitch":        float32(2),
	}
	buf, err := wire.WritePayload(msg, values, msg.BaseFieldPayloadLength)
	require.NoError(t, err)
	require.Len(t, buf, msg.BaseFieldPayloadLength)

	decoded, err := wire.ReadPayload(msg, buf)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0}, decoded["ext_covariance"])
}

func TestReadPayloadRejectsOversizedBuffer(t *testing.T) {
	msg := compiledMessage(t, 30)
	_, err := wire.ReadPayload(msg, make([]byte, msg.MaxPayloadLength+1))
	require.Error(t, err)
	require.ErrorIs(t, err, wire.PayloadLengthInvalid{})
}

func TestCharFieldPreservesEmbeddedNUL(t *testing.T) {
	msg := compiledMessage(t, 0)
	values := map[string]any{
		"custom_mode": uint32(0),
		"type":        uint8(1),
		"tag":         "A\x00B\x00",
	}
	buf, err := wire.WritePayload(msg, values, msg.MaxPayloadLength)
	require.NoError(t, err)

	decoded, err := wire.ReadPayload(msg, buf)
	require.NoError(t, err)
	require.Equal(t, "A\x00B\x00", decoded["tag"])
}

func TestWritePayloadRejectsWrongGoType(t *testing.T) {
	msg := compiledMessage(t, 0)
	_, err := wire.WritePayload(msg, map[string]any{"type": "not a uint8"}, msg.MaxPayloadLength)
	require.Error(t, err)
	require.ErrorIs(t, err, wire.BadFieldValue{})
}
