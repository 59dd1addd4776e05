package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mavbridge/mavcodec/dialect"
	"github.com/mavbridge/mavcodec/schema"
)

const heartbeatXML = `<?xml version="1.0"?>
<mavlink>
  <messages>
    <message id="0" name="HEARTBEAT">
      <field type="uint32_t" name="custom_mode">Custom mode.</field>
      <field type="uint8_t" name="type">Vehicle type.</field>
      <field type="uint8_t" name="autopilot">Autopilot type.</field>
      <field type="uint8_t" name="base_mode">Base mode.</field>
      <field type="uint8_t" name="system_status">System status.</field>
      <field type="uint8_t_mavlink_version" name="mavlink_version">MAVLink version.</field>
    </message>
  </messages>
</mavlink>`

const attitudeXML = `<?xml version="1.0"?>
<mavlink>
  <messages>
    <message id="30" name="ATTITUDE">
      <field type="uint32_t" name="time_boot_ms"/>
      <field type="float" name="roll"/>
      <field type="float" name="pitch"/>
      <field type="float" name="yaw"/>
      <field type="float" name="rollspeed"/>
      <field type="float" name="pitchspeed"/>
      <field type="float" name="yawspeed"/>
      <extensions/>
      <field type="float[3]" name="ext_covariance"/>
    </message>
  </messages>
</mavlink>`

func loadBundle(t *testing.T, files map[string]string, root string) *dialect.Bundle {
	t.Helper()
	resolver := func(name string) ([]byte, error) {
		data, ok := files[name]
		require.True(t, ok, "missing fixture %q", name)
		return []byte(data), nil
	}
	bundle, err := dialect.Load(resolver, root, false)
	require.NoError(t, err)
	return bundle
}

func TestCompileOrdersFieldsByDescendingElementSize(t *testing.T) {
	bundle := loadBundle(t, map[string]string{"heartbeat.xml": heartbeatXML}, "heartbeat.xml")
	cat, err := schema.Compile(bundle)
	require.NoError(t, err)

	msg, ok := cat.Message(0)
	require.True(t, ok)
	require.Equal(t, "HEARTBEAT", msg.Name)

	// custom_mode (4 bytes) must sort before the five uint8_t fields, and
	// the five uint8_t fields keep their declaration order (stable sort).
	names := make([]string, len(msg.OrderedFields))
	for i, f := range msg.OrderedFields {
		names[i] = f.Name
	}
	require.Equal(t, []string{
		"custom_mode", "type", "autopilot", "base_mode", "system_status", "mavlink_version",
	}, names)

	require.Equal(t, 0, msg.OrderedFields[0].Offset)
	require.Equal(t, 4, msg.OrderedFields[1].Offset)
	require.Equal(t, 9, msg.BaseFieldPayloadLength)
	require.Equal(t, 9, msg.MaxPayloadLength)
}

func TestCompileSeparatesExtendedFields(t *testing.T) {
	bundle := loadBundle(t, map[string]string{"attitude.xml": attitudeXML}, "attitude.xml")
	cat, err := schema.Compile(bundle)
	require.NoError(t, err)

	msg, ok := cat.Message(30)
	require.True(t, ok)
	require.Equal(t, 28, msg.BaseFieldPayloadLength)
	require.Equal(t, 40, msg.MaxPayloadLength)

	last := msg.OrderedFields[len(msg.OrderedFields)-1]
	require.Equal(t, "ext_covariance", last.Name)
	require.True(t, last.Extended)
	require.Equal(t, 28, last.Offset)
}

func TestCompileDerivesCRCExtraDeterministically(t *testing.T) {
	bundle := loadBundle(t, map[string]string{"heartbeat.xml": heartbeatXML}, "heartbeat.xml")
	cat1, err := schema.Compile(bundle)
	require.NoError(t, err)
	cat2, err := schema.Compile(bundle)
	require.NoError(t, err)

	m1, _ := cat1.Message(0)
	m2, _ := cat2.Message(0)
	require.Equal(t, m1.CRCExtra, m2.CRCExtra)
	require.NotZero(t, m1.CRCExtra)
}

func TestCompileDetectsDuplicateMessageIds(t *testing.T) {
	const dupXML = `<?xml version="1.0"?>
<mavlink>
  <include>heartbeat.xml</include>
  <messages>
    <message id="0" name="COLLIDES_WITH_HEARTBEAT">
      <field type="uint8_t" name="x"/>
    </message>
  </messages>
</mavlink>`
	bundle := loadBundle(t, map[string]string{
		"dup.xml":       dupXML,
		"heartbeat.xml": heartbeatXML,
	}, "dup.xml")

	_, err := schema.Compile(bundle)
	require.Error(t, err)
	require.ErrorIs(t, err, schema.DuplicateMessageId{})
}

func TestCompileRejectsUnresolvableFieldType(t *testing.T) {
	const badXML = `<?xml version="1.0"?>
<mavlink>
  <messages>
    <message id="1" name="BAD">
      <field type="nonsense_t" name="x"/>
    </message>
  </messages>
</mavlink>`
	bundle := loadBundle(t, map[string]string{"bad.xml": badXML}, "bad.xml")
	_, err := schema.Compile(bundle)
	require.Error(t, err)
}
