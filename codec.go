package feeroute

import (
	proto "github.com/gogo/protobuf/proto"
)

// Metadata is a header attached to every persisted entity. Keeping a
// schema version allows data migrations without guessing the layout of
// old records.
//
// This message is maintained by hand rather than generated. Field tags
// must stay stable, the serialized form is part of the storage format.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString((*metadataAlias)(m)) }
func (*Metadata) ProtoMessage()    {}

// metadataAlias has the same layout and tags as Metadata but none of
// its serialization methods. Converting to the alias before calling
// into the proto package forces the reflection codec and keeps
// proto.Marshal from dispatching right back into our Marshal.
type metadataAlias Metadata

func (m *metadataAlias) Reset()         { *m = metadataAlias{} }
func (m *metadataAlias) String() string { return proto.CompactTextString(m) }
func (*metadataAlias) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataAlias)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataAlias)(m))
}

func (m *Metadata) GetSchema() uint32 {
	if m != nil {
		return m.Schema
	}
	return 0
}

func init() {
	proto.RegisterType((*metadataAlias)(nil), "feeroute.Metadata")
}
