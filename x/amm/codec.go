package amm

import (
	proto "github.com/gogo/protobuf/proto"

	feeroute "github.com/meteorroute/feeroute"
)

// Position is the honorary fee position of a vault.
type Position struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Pool is the identity of the liquidity pool the position sits in.
	Pool       []byte `protobuf:"bytes,2,opt,name=pool,proto3" json:"pool,omitempty"`
	QuoteToken string `protobuf:"bytes,3,opt,name=quote_token,json=quoteToken,proto3" json:"quote_token,omitempty"`
	BaseToken  string `protobuf:"bytes,4,opt,name=base_token,json=baseToken,proto3" json:"base_token,omitempty"`
	TickLower  int32  `protobuf:"varint,5,opt,name=tick_lower,json=tickLower,proto3" json:"tick_lower,omitempty"`
	TickUpper  int32  `protobuf:"varint,6,opt,name=tick_upper,json=tickUpper,proto3" json:"tick_upper,omitempty"`
	// VerifiedQuoteOnly is set once at registration after the tick
	// range check and never changes.
	VerifiedQuoteOnly bool `protobuf:"varint,7,opt,name=verified_quote_only,json=verifiedQuoteOnly,proto3" json:"verified_quote_only,omitempty"`
	// AccruedQuote and AccruedBase are the fees collected by the pool
	// for this position since the last claim.
	AccruedQuote uint64            `protobuf:"varint,8,opt,name=accrued_quote,json=accruedQuote,proto3" json:"accrued_quote,omitempty"`
	AccruedBase  uint64            `protobuf:"varint,9,opt,name=accrued_base,json=accruedBase,proto3" json:"accrued_base,omitempty"`
	CreatedAt    feeroute.UnixTime `protobuf:"varint,10,opt,name=created_at,json=createdAt,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"created_at,omitempty"`
}

func (p *Position) Reset()         { *p = Position{} }
func (p *Position) String() string { return proto.CompactTextString((*positionAlias)(p)) }
func (*Position) ProtoMessage()    {}

type positionAlias Position

func (p *positionAlias) Reset()         { *p = positionAlias{} }
func (p *positionAlias) String() string { return proto.CompactTextString(p) }
func (*positionAlias) ProtoMessage()    {}

func (p *Position) Marshal() ([]byte, error) {
	return proto.Marshal((*positionAlias)(p))
}

func (p *Position) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*positionAlias)(p))
}

// RegisterPositionMsg registers the honorary position of a vault. This
// is a one-time setup operation.
type RegisterPositionMsg struct {
	Metadata   *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID    []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Pool       []byte             `protobuf:"bytes,3,opt,name=pool,proto3" json:"pool,omitempty"`
	QuoteToken string             `protobuf:"bytes,4,opt,name=quote_token,json=quoteToken,proto3" json:"quote_token,omitempty"`
	BaseToken  string             `protobuf:"bytes,5,opt,name=base_token,json=baseToken,proto3" json:"base_token,omitempty"`
	TickLower  int32              `protobuf:"varint,6,opt,name=tick_lower,json=tickLower,proto3" json:"tick_lower,omitempty"`
	TickUpper  int32              `protobuf:"varint,7,opt,name=tick_upper,json=tickUpper,proto3" json:"tick_upper,omitempty"`
}

func (m *RegisterPositionMsg) Reset()         { *m = RegisterPositionMsg{} }
func (m *RegisterPositionMsg) String() string { return proto.CompactTextString((*registerAlias)(m)) }
func (*RegisterPositionMsg) ProtoMessage()    {}

type registerAlias RegisterPositionMsg

func (m *registerAlias) Reset()         { *m = registerAlias{} }
func (m *registerAlias) String() string { return proto.CompactTextString(m) }
func (*registerAlias) ProtoMessage()    {}

func (m *RegisterPositionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*registerAlias)(m))
}

func (m *RegisterPositionMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*registerAlias)(m))
}

func init() {
	proto.RegisterType((*positionAlias)(nil), "amm.Position")
	proto.RegisterType((*registerAlias)(nil), "amm.RegisterPositionMsg")
}
