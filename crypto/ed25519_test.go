package crypto

import (
	"testing"

	feeroute "github.com/meteorroute/feeroute"
)

func TestSignAndVerify(t *testing.T) {
	priv := GenPrivateKey()
	msg := []byte("claim quote fees")

	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("cannot sign: %+v", err)
	}
	if !priv.PublicKey().Verify(msg, sig) {
		t.Fatal("signature must verify")
	}
	if priv.PublicKey().Verify([]byte("other"), sig) {
		t.Fatal("signature must not verify a different message")
	}
}

func TestPublicKeyCondition(t *testing.T) {
	priv := GenPrivateKey()
	cond := priv.PublicKey().Condition()
	if err := cond.Validate(); err != nil {
		t.Fatalf("invalid condition: %+v", err)
	}
	if err := cond.Address().Validate(); err != nil {
		t.Fatalf("invalid address: %+v", err)
	}
	if got, want := len(cond.Address()), feeroute.AddressLength; got != want {
		t.Fatalf("want %d byte address, got %d", want, got)
	}
}

func TestDistinctKeysDistinctAddresses(t *testing.T) {
	a := GenPrivateKey().PublicKey().Address()
	b := GenPrivateKey().PublicKey().Address()
	if a.Equals(b) {
		t.Fatal("two random keys must not share an address")
	}
}
