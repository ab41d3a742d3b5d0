package cash

import (
	"regexp"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
)

// isTicker matches the token identifiers accepted by the ledger.
var isTicker = regexp.MustCompile(`^[A-Z]{3,6}$`).MatchString

// ValidTicker returns true iff this is a valid token ticker.
func ValidTicker(ticker string) bool {
	return isTicker(ticker)
}

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is a consistent ledger entry.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	seen := make(map[string]struct{}, len(w.Coins))
	for _, c := range w.Coins {
		if !ValidTicker(c.Ticker) {
			return errors.Wrapf(errors.ErrState, "invalid ticker %q", c.Ticker)
		}
		if _, ok := seen[c.Ticker]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "ticker %q", c.Ticker)
		}
		seen[c.Ticker] = struct{}{}
	}
	return nil
}

// Balance returns the amount of the given token held in the wallet.
func (w *Wallet) Balance(ticker string) uint64 {
	for _, c := range w.Coins {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Add increases the wallet balance of the given token.
func (w *Wallet) Add(ticker string, amount uint64) error {
	for _, c := range w.Coins {
		if c.Ticker != ticker {
			continue
		}
		sum := c.Amount + amount
		if sum < c.Amount {
			return errors.Wrapf(errors.ErrOverflow, "balance of %q", ticker)
		}
		c.Amount = sum
		return nil
	}
	w.Coins = append(w.Coins, &Coin{Ticker: ticker, Amount: amount})
	return nil
}

// Subtract decreases the wallet balance of the given token. Draining a
// balance to zero removes the coin entry.
func (w *Wallet) Subtract(ticker string, amount uint64) error {
	for i, c := range w.Coins {
		if c.Ticker != ticker {
			continue
		}
		if c.Amount < amount {
			return errors.Wrapf(errors.ErrAmount, "insufficient %q funds", ticker)
		}
		c.Amount -= amount
		if c.Amount == 0 {
			w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
		}
		return nil
	}
	return errors.Wrapf(errors.ErrAmount, "insufficient %q funds", ticker)
}

// NewWalletBucket returns the bucket holding all wallets, keyed by
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Wallet{})
}

func walletKey(addr feeroute.Address) []byte {
	return addr
}
