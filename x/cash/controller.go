package cash

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
)

// Controller is the functionality needed by the rest of the engine to
// query and move token balances.
type Controller interface {
	// Balance returns the amount of the given token held by the
	// address. A missing wallet counts as a zero balance.
	Balance(db feeroute.ReadOnlyKVStore, addr feeroute.Address, ticker string) (uint64, error)

	// HasWallet returns whether the address owns a wallet at all.
	HasWallet(db feeroute.ReadOnlyKVStore, addr feeroute.Address) (bool, error)

	// MoveCoins transfers the amount between two addresses. A missing
	// destination wallet is created on the fly.
	MoveCoins(db feeroute.KVStore, src, dest feeroute.Address, amount uint64, ticker string) error

	// IssueCoins creates new value out of thin air and credits it to
	// the destination. This is how externally claimed fees enter the
	// ledger.
	IssueCoins(db feeroute.KVStore, dest feeroute.Address, amount uint64, ticker string) error
}

// CashController is the Controller implementation on top of the wallet
// bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a controller operating on the standard wallet
// bucket.
func NewController() CashController {
	return CashController{bucket: NewWalletBucket()}
}

func (c CashController) Balance(db feeroute.ReadOnlyKVStore, addr feeroute.Address, ticker string) (uint64, error) {
	var w Wallet
	switch err := c.bucket.One(db, walletKey(addr), &w); {
	case err == nil:
		return w.Balance(ticker), nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load wallet")
	}
}

func (c CashController) HasWallet(db feeroute.ReadOnlyKVStore, addr feeroute.Address) (bool, error) {
	return c.bucket.Has(db, walletKey(addr))
}

func (c CashController) MoveCoins(db feeroute.KVStore, src, dest feeroute.Address, amount uint64, ticker string) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if !ValidTicker(ticker) {
		return errors.Wrapf(errors.ErrState, "invalid ticker %q", ticker)
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source equals destination")
	}

	var sender Wallet
	if err := c.bucket.One(db, walletKey(src), &sender); err != nil {
		return errors.Wrap(err, "cannot load sender wallet")
	}
	if err := sender.Subtract(ticker, amount); err != nil {
		return err
	}

	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(ticker, amount); err != nil {
		return err
	}

	if err := c.bucket.Put(db, walletKey(src), &sender); err != nil {
		return errors.Wrap(err, "cannot store sender wallet")
	}
	if err := c.bucket.Put(db, walletKey(dest), recipient); err != nil {
		return errors.Wrap(err, "cannot store recipient wallet")
	}
	return nil
}

func (c CashController) IssueCoins(db feeroute.KVStore, dest feeroute.Address, amount uint64, ticker string) error {
	if amount == 0 {
		return nil
	}
	if !ValidTicker(ticker) {
		return errors.Wrapf(errors.ErrState, "invalid ticker %q", ticker)
	}

	w, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(ticker, amount); err != nil {
		return err
	}
	return c.bucket.Put(db, walletKey(dest), w)
}

func (c CashController) loadOrCreate(db feeroute.ReadOnlyKVStore, addr feeroute.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, walletKey(addr), &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &feeroute.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
