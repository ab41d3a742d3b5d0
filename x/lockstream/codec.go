package lockstream

import (
	proto "github.com/gogo/protobuf/proto"

	feeroute "github.com/meteorroute/feeroute"
)

// LockRecord is a vesting stream snapshot. Owner is the investor the
// stream pays out to, Deposited the total amount put under vesting and
// Withdrawn what has been released so far.
type LockRecord struct {
	Metadata  *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner     []byte             `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Deposited uint64             `protobuf:"varint,3,opt,name=deposited,proto3" json:"deposited,omitempty"`
	Withdrawn uint64             `protobuf:"varint,4,opt,name=withdrawn,proto3" json:"withdrawn,omitempty"`
}

func (l *LockRecord) Reset()         { *l = LockRecord{} }
func (l *LockRecord) String() string { return proto.CompactTextString((*lockRecordAlias)(l)) }
func (*LockRecord) ProtoMessage()    {}

type lockRecordAlias LockRecord

func (l *lockRecordAlias) Reset()         { *l = lockRecordAlias{} }
func (l *lockRecordAlias) String() string { return proto.CompactTextString(l) }
func (*lockRecordAlias) ProtoMessage()    {}

func (l *LockRecord) Marshal() ([]byte, error) {
	return proto.Marshal((*lockRecordAlias)(l))
}

func (l *LockRecord) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*lockRecordAlias)(l))
}

func init() {
	proto.RegisterType((*lockRecordAlias)(nil), "lockstream.LockRecord")
}
