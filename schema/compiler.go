package schema

import (
	"sort"
	"strings"

	"github.com/mavbridge/mavcodec/crc16"
	"github.com/mavbridge/mavcodec/dialect"
	"github.com/mavbridge/mavcodec/mavtype"
)

/*
Compile turns a raw dialect.Bundle into a Catalog. It resolves each field's
declared type via mavtype, computes wire ordering and byte offsets, and
derives CRC_EXTRA per message. Message ids must be unique across the whole
bundle (a message may be declared in only one dialect file, but the bundle
as a whole — root plus every transitive include — must not collide).
*/

////////////////////////////////////////////////////////////////////////////////

// Compile compiles bundle into a new Catalog. It fails fast on any
// unresolvable field type or id collision.
func Compile(bundle *dialect.Bundle) (*Catalog, error) {
	cat := newCatalog()

	for _, raw := range bundle.Dialects {
		for _, rawEnum := range raw.Enums {
			cat.enumsByName[rawEnum.Name] = compileEnum(rawEnum)
		}
	}

	for _, raw := range bundle.Dialects {
		for i := range raw.Messages {
			msg, err := compileMessage(raw.Messages[i])
			if err != nil {
				return nil, err
			}
			if _, collide := cat.messagesByID[msg.ID]; collide {
				return nil, DuplicateMessageId{ID: msg.ID}
			}
			msg.included.Store(true)
			cat.messagesByID[msg.ID] = msg
		}
	}

	cat.indexCommands()
	return cat, nil
}

func compileEnum(raw dialect.Enum) *EnumSchema {
	enum := &EnumSchema{
		Name:        raw.Name,
		Bitmask:     raw.Bitmask,
		Description: raw.Description,
	}
	if raw.Deprecated != nil {
		enum.Deprecated = &Deprecation{
			Since:      raw.Deprecated.Since,
			ReplacedBy: raw.Deprecated.ReplacedBy,
			Note:       raw.Deprecated.Text,
		}
	}
	enum.WorkInProgress = raw.WorkInProgress != nil
	for _, e := range raw.Entries {
		entry := EntryValue{
			Value:       e.Value,
			Name:        e.Name,
			Description: e.Description,
		}
		for _, p := range e.Params {
			entry.Params = append(entry.Params, ParamDoc{
				Index: p.Index,
				Label: p.Label,
				Units: p.Units,
				Min:   p.MinValue,
				Max:   p.MaxValue,
			})
		}
		enum.Entries = append(enum.Entries, entry)
	}
	return enum
}

func compileMessage(raw dialect.Message) (*MessageSchema, error) {
	msg := &MessageSchema{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
	}
	if raw.Deprecated != nil {
		msg.Deprecated = &Deprecation{
			Since:      raw.Deprecated.Since,
			ReplacedBy: raw.Deprecated.ReplacedBy,
			Note:       raw.Deprecated.Text,
		}
	}
	msg.WorkInProgress = raw.WorkInProgress

	for _, rf := range raw.Fields {
		desc, err := mavtype.Parse(rf.Type)
		if err != nil {
			return nil, err
		}
		msg.Fields = append(msg.Fields, FieldSchema{
			Name:        rf.Name,
			Declared:    rf.Type,
			Kind:        desc.Kind,
			ElementSize: desc.ElementSize,
			ArrayLength: desc.ArrayLength,
			Length:      desc.Length(),
			Extended:    rf.Extended,
		})
	}

	orderFields(msg)
	assignOffsets(msg)
	msg.CRCExtra = crcExtra(msg)
	return msg, nil
}

// orderFields sorts base fields by descending element size (stable) and
// appends extended fields in declaration order, per spec §3's invariant.
func orderFields(msg *MessageSchema) {
	var base, extended []FieldSchema
	for _, f := range msg.Fields {
		if f.Extended {
			extended = append(extended, f)
		} else {
			base = append(base, f)
		}
	}
	sort.SliceStable(base, func(i, j int) bool {
		return base[i].ElementSize > base[j].ElementSize
	})
	msg.OrderedFields = append(append([]FieldSchema{}, base...), extended...)
}

func assignOffsets(msg *MessageSchema) {
	offset := 0
	for i := range msg.OrderedFields {
		msg.OrderedFields[i].Offset = offset
		offset += msg.OrderedFields[i].Length
		if msg.OrderedFields[i].Extended {
			msg.MaxPayloadLength += msg.OrderedFields[i].Length
		} else {
			msg.BaseFieldPayloadLength += msg.OrderedFields[i].Length
			msg.MaxPayloadLength += msg.OrderedFields[i].Length
		}
	}
}

// crcExtra implements spec §4.4.1: an ASCII digest of the message name and
// every base field's curated type, name, and (for arrays) raw length byte.
func crcExtra(msg *MessageSchema) byte {
	var b strings.Builder
	b.WriteString(msg.Name)
	b.WriteByte(' ')
	for _, f := range msg.OrderedFields {
		if f.Extended {
			continue
		}
		b.WriteString(curatedType(f.Declared))
		b.WriteByte(' ')
		b.WriteString(f.Name)
		b.WriteByte(' ')
		if f.Array() {
			b.WriteByte(byte(f.ArrayLength))
		}
	}
	crc := crc16.Calculate([]byte(b.String()))
	return byte(crc&0xFF) ^ byte(crc>>8)
}

// curatedType strips a trailing [N] and the historical "_mavlink_version"
// suffix some dialects attach to the HEARTBEAT version field's declared
// type, reproducing the upstream generator's CRC_EXTRA input byte-for-byte.
func curatedType(declared string) string {
	name := declared
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSuffix(name, "_mavlink_version")
}
