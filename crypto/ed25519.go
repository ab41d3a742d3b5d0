/*
Package crypto wraps the ed25519 primitives used to identify the actors
of the engine: the operation authority, the project creator and the
investors. A public key maps to a condition and through it to a store
address.
*/
package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
)

// Signer is implemented by anything that can produce a signature and
// reveal the condition the signature fulfills.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	PublicKey() PublicKey
}

// PublicKey identifies an actor.
type PublicKey struct {
	data ed25519.PublicKey
}

// Condition returns the signature condition of this key.
func (p PublicKey) Condition() feeroute.Condition {
	return feeroute.NewCondition("sigs", "ed25519", p.data)
}

// Address returns the store address of this key.
func (p PublicKey) Address() feeroute.Address {
	return p.Condition().Address()
}

// Verify returns true iff sig is a valid signature of msg under this
// key.
func (p PublicKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(p.data, msg, sig)
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	data ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivateKey returns a fresh random private key.
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{data: priv}
}

// Sign signs the given message.
func (p *PrivateKey) Sign(msg []byte) ([]byte, error) {
	if len(p.data) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "malformed private key")
	}
	return ed25519.Sign(p.data, msg), nil
}

// PublicKey returns the public half of this key.
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey{data: p.data.Public().(ed25519.PublicKey)}
}
