package cash

import (
	proto "github.com/gogo/protobuf/proto"

	feeroute "github.com/meteorroute/feeroute"
)

// Coin is a whole-unit amount of a single token.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (c *Coin) Reset()         { *c = Coin{} }
func (c *Coin) String() string { return proto.CompactTextString((*coinAlias)(c)) }
func (*Coin) ProtoMessage()    {}

type coinAlias Coin

func (c *coinAlias) Reset()         { *c = coinAlias{} }
func (c *coinAlias) String() string { return proto.CompactTextString(c) }
func (*coinAlias) ProtoMessage()    {}

func (c *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinAlias)(c))
}

func (c *Coin) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*coinAlias)(c))
}

// Wallet holds the token balances of a single address.
type Wallet struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*Coin            `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString((*walletAlias)(w)) }
func (*Wallet) ProtoMessage()    {}

type walletAlias Wallet

func (w *walletAlias) Reset()         { *w = walletAlias{} }
func (w *walletAlias) String() string { return proto.CompactTextString(w) }
func (*walletAlias) ProtoMessage()    {}

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletAlias)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletAlias)(w))
}

func init() {
	proto.RegisterType((*coinAlias)(nil), "cash.Coin")
	proto.RegisterType((*walletAlias)(nil), "cash.Wallet")
}
