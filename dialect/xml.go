package dialect

import (
	"bytes"
	"encoding/xml"
	"io"
)

/*
Raw mirrors the MAVLink dialect XML schema (https://mavlink.io/en/guide/xml_schema.html)
closely enough to round-trip every element schema.Compile needs: include,
version, dialect, enums/enum/entry/param, messages/message/field, extensions,
wip, deprecated. Field order within a message matters — a field's position
relative to the <extensions/> marker decides whether it is a base or
extended field — so Message implements xml.Unmarshaler itself instead of
relying on struct-tag ordering, which encoding/xml does not preserve across
sibling element types.
*/

////////////////////////////////////////////////////////////////////////////////

// Raw is the root <mavlink> document.
type Raw struct {
	XMLName  xml.Name  `xml:"mavlink"`
	Version  int       `xml:"version"`
	Dialect  int       `xml:"dialect"`
	Includes []string  `xml:"include"`
	Enums    []Enum    `xml:"enums>enum"`
	Messages []Message `xml:"messages>message"`
}

// Deprecated carries the metadata of a <deprecated> marker.
type Deprecated struct {
	Since      string `xml:"since,attr"`
	ReplacedBy string `xml:"replaced_by,attr"`
	Text       string `xml:",chardata"`
}

// Param describes a <param> child of an enum <entry>, used by MAV_CMD
// entries to document the meaning of each command parameter slot.
type Param struct {
	Index    int    `xml:"index,attr"`
	Label    string `xml:"label,attr"`
	Units    string `xml:"units,attr"`
	MinValue string `xml:"minValue,attr"`
	MaxValue string `xml:"maxValue,attr"`
	Text     string `xml:",chardata"`
}

// Entry is one <entry> of an <enum>.
type Entry struct {
	Value       int64   `xml:"value,attr"`
	Name        string  `xml:"name,attr"`
	Description string  `xml:"description"`
	Params      []Param `xml:"param"`
}

// Enum is an <enum> element under <enums>.
type Enum struct {
	Name           string      `xml:"name,attr"`
	Bitmask        bool        `xml:"bitmask,attr"`
	Description    string      `xml:"description"`
	Deprecated     *Deprecated `xml:"deprecated"`
	WorkInProgress *struct{}   `xml:"wip"`
	Entries        []Entry     `xml:"entry"`
}

// Field is one <field> of a <message>, with Extended set by Message's
// UnmarshalXML depending on whether it followed an <extensions/> marker.
type Field struct {
	Type        string `xml:"type,attr"`
	Name        string `xml:"name,attr"`
	Description string `xml:",chardata"`
	Extended    bool
}

// Message is a <message> element under <messages>.
type Message struct {
	ID             uint32
	Name           string
	Description    string
	Deprecated     *Deprecated
	WorkInProgress bool
	Fields         []Field
}

// UnmarshalXML walks the <message> element's children in document order so
// Fields after an <extensions/> marker can be flagged Extended.
func (m *Message) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			id, err := parseUint(attr.Value)
			if err != nil {
				return err
			}
			m.ID = id
		case "name":
			m.Name = attr.Value
		}
	}

	extended := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "field":
				var f Field
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				f.Extended = extended
				m.Fields = append(m.Fields, f)
			case "extensions":
				extended = true
				if err := d.Skip(); err != nil {
					return err
				}
			case "wip":
				m.WorkInProgress = true
				if err := d.Skip(); err != nil {
					return err
				}
			case "deprecated":
				var dep Deprecated
				if err := d.DecodeElement(&dep, &t); err != nil {
					return err
				}
				m.Deprecated = &dep
			case "description":
				var desc string
				if err := d.DecodeElement(&desc, &t); err != nil {
					return err
				}
				m.Description = desc
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

func parseUint(s string) (uint32, error) {
	var n uint32
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, BadAttribute{Attribute: "id", Value: s}
		}
		n = n*10 + uint32(c-'0')
	}
	return n, nil
}

// knownElements and knownAttrs enumerate the xml_schema.html vocabulary
// strict mode accepts; some listed field attributes (enum, units, ...) are
// accepted but not read into Field. validateKnown walks the document a second
// time, independent of the lenient struct-tag unmarshal above, so strict
// mode can flag a name it would otherwise have silently skipped.
var knownElements = map[string]bool{
	"mavlink": true, "version": true, "dialect": true, "include": true,
	"enums": true, "enum": true, "entry": true, "param": true,
	"description": true, "messages": true, "message": true, "field": true,
	"extensions": true, "wip": true, "deprecated": true,
}

var knownAttrs = map[string]map[string]bool{
	"enum":       {"name": true, "bitmask": true},
	"entry":      {"value": true, "name": true},
	"param":      {"index": true, "label": true, "units": true, "minValue": true, "maxValue": true},
	"message":    {"id": true, "name": true},
	"field":      {"type": true, "name": true, "enum": true, "units": true, "print_format": true, "invalid": true, "default": true, "instance": true},
	"deprecated": {"since": true, "replaced_by": true},
}

// validateKnown reports the first unrecognized element or attribute found
// in data. Load calls it when strict is true (mavcodec.WithStrict), so
// unknown XML is flagged instead of ignored.
func validateKnown(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !knownElements[start.Name.Local] {
			return UnknownElement{Name: start.Name.Local}
		}
		allowed := knownAttrs[start.Name.Local]
		for _, attr := range start.Attr {
			if allowed == nil || !allowed[attr.Name.Local] {
				return UnknownAttribute{Element: start.Name.Local, Attribute: attr.Name.Local}
			}
		}
	}
}
