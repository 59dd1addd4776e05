package dialect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mavbridge/mavcodec/dialect"
)

func fixtureResolver(files map[string]string) dialect.Resolver {
	return func(name string) ([]byte, error) {
		data, ok := files[name]
		if !ok {
			return nil, errors.New("no such fixture")
		}
		return []byte(data), nil
	}
}

const minimalXML = `<?xml version="1.0"?>
<mavlink>
  <version>3</version>
  <dialect>0</dialect>
  <enums>
    <enum name="MAV_TYPE">
      <entry value="8" name="MAV_TYPE_QUADROTOR"/>
    </enum>
  </enums>
  <messages>
    <message id="0" name="HEARTBEAT">
      <field type="uint8_t" name="type">Vehicle type.</field>
      <field type="uint32_t" name="custom_mode">Custom mode.</field>
      <field type="uint8_t_mavlink_version" name="mavlink_version">MAVLink version.</field>
    </message>
  </messages>
</mavlink>`

const includerXML = `<?xml version="1.0"?>
<mavlink>
  <include>minimal.xml</include>
  <messages>
    <message id="30" name="ATTITUDE">
      <field type="uint32_t" name="time_boot_ms"/>
      <field type="float" name="roll"/>
      <extensions/>
      <field type="float" name="ext_field"/>
    </message>
  </messages>
</mavlink>`

func TestLoadParsesFieldsAndExtensions(t *testing.T) {
	resolver := fixtureResolver(map[string]string{
		"includer.xml": includerXML,
		"minimal.xml":  minimalXML,
	})
	bundle, err := dialect.Load(resolver, "includer.xml", false)
	require.NoError(t, err)
	require.Len(t, bundle.Dialects, 2)

	includer := bundle.Dialects["includer.xml"]
	require.Len(t, includer.Messages, 1)
	msg := includer.Messages[0]
	require.Equal(t, uint32(30), msg.ID)
	require.Len(t, msg.Fields, 3)
	require.False(t, msg.Fields[0].Extended)
	require.False(t, msg.Fields[1].Extended)
	require.True(t, msg.Fields[2].Extended)

	minimal := bundle.Dialects["minimal.xml"]
	require.Len(t, minimal.Messages, 1)
	require.Equal(t, "HEARTBEAT", minimal.Messages[0].Name)
	require.Len(t, minimal.Enums, 1)
	require.Equal(t, "MAV_TYPE", minimal.Enums[0].Name)
}

func TestLoadIsCycleSafe(t *testing.T) {
	resolver := fixtureResolver(map[string]string{
		"a.xml": `<mavlink><include>b.xml</include></mavlink>`,
		"b.xml": `<mavlink><include>a.xml</include></mavlink>`,
	})
	bundle, err := dialect.Load(resolver, "a.xml", false)
	require.NoError(t, err)
	require.Len(t, bundle.Dialects, 2)
}

func TestLoadMissingDialect(t *testing.T) {
	_, err := dialect.Load(fixtureResolver(nil), "missing.xml", false)
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.DialectNotFound{}))
}

func TestLoadMalformedXML(t *testing.T) {
	resolver := fixtureResolver(map[string]string{"bad.xml": "<mavlink><messages>"})
	_, err := dialect.Load(resolver, "bad.xml", false)
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.DialectParseError{}))
}

func TestLoadStrictIgnoresUnknownByDefault(t *testing.T) {
	resolver := fixtureResolver(map[string]string{
		"quirky.xml": `<mavlink><messages><message id="0" name="HEARTBEAT" bogus="x">
			<field type="uint8_t" name="type"/>
		</message></messages></mavlink>`,
	})
	_, err := dialect.Load(resolver, "quirky.xml", false)
	require.NoError(t, err)
}

func TestLoadStrictRejectsUnknownAttribute(t *testing.T) {
	resolver := fixtureResolver(map[string]string{
		"quirky.xml": `<mavlink><messages><message id="0" name="HEARTBEAT" bogus="x">
			<field type="uint8_t" name="type"/>
		</message></messages></mavlink>`,
	})
	_, err := dialect.Load(resolver, "quirky.xml", true)
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.DialectParseError{}))
	require.True(t, errors.Is(err, dialect.UnknownAttribute{}))
}

func TestLoadStrictRejectsUnknownElement(t *testing.T) {
	resolver := fixtureResolver(map[string]string{
		"quirky.xml": `<mavlink><messages><message id="0" name="HEARTBEAT">
			<field type="uint8_t" name="type"/>
			<gizmo/>
		</message></messages></mavlink>`,
	})
	_, err := dialect.Load(resolver, "quirky.xml", true)
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.UnknownElement{}))
}
