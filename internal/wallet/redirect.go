// Package wallet implements the best-effort handoff to a mobile wallet
// application: a universal link, then a custom-scheme deep link, then the
// app-store page, tried in order with fixed delays. The environment gives
// no reliable signal that the external app actually opened, so the first
// attempt that does not error is counted as the success — an accepted
// limitation of the flow, not something to fix here.
package wallet

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bigkatzo/storefun-backend/internal/kv"
)

var (
	ErrUnknownWallet    = errors.New("unknown wallet")
	ErrTooManyAttempts  = errors.New("redirect attempt limit reached")
	ErrAllTargetsFailed = errors.New("all redirect targets failed")
)

// App describes one supported wallet and its three handoff targets. The
// link templates take the dapp URL as their single %s argument.
type App struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	UniversalLink string `json:"universalLink"`
	DeepLink      string `json:"deepLink"`
	StoreURL      string `json:"storeUrl"`
}

// Apps lists the wallets the storefront can hand off to.
var Apps = []App{
	{
		ID:            "phantom",
		Name:          "Phantom",
		UniversalLink: "https://phantom.app/ul/browse/%s",
		DeepLink:      "phantom://browse/%s",
		StoreURL:      "https://phantom.app/download",
	},
	{
		ID:            "solflare",
		Name:          "Solflare",
		UniversalLink: "https://solflare.com/ul/v1/browse/%s",
		DeepLink:      "solflare://v1/browse/%s",
		StoreURL:      "https://solflare.com/download",
	},
	{
		ID:            "backpack",
		Name:          "Backpack",
		UniversalLink: "https://backpack.app/ul/v1/browse/%s",
		DeepLink:      "backpack://v1/browse/%s",
		StoreURL:      "https://backpack.app/download",
	},
}

// Lookup finds a wallet by its identifier.
func Lookup(id string) (App, bool) {
	for _, a := range Apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}

// Opener performs one handoff attempt. An attempt that returns nil is
// considered successful for bookkeeping.
type Opener interface {
	Open(target string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(target string) error

func (f OpenerFunc) Open(target string) error { return f(target) }

// LinkChecker is the default Opener: it accepts any target that parses as
// an absolute URL. The actual navigation happens on the client, which
// follows the URL returned in the Result.
type LinkChecker struct{}

func (LinkChecker) Open(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return errors.New("relative url")
	}
	return nil
}

// Result reports which target the handoff settled on.
type Result struct {
	WalletID string `json:"walletId"`
	Target   string `json:"target"` // "universal" | "deeplink" | "store" | "none"
	URL      string `json:"url,omitempty"`
	Attempts int    `json:"attempts"`
}

const (
	// MaxAttempts caps redirects per wallet so a client stuck in a
	// redirect loop eventually stops being bounced around.
	MaxAttempts = 3

	targetDelay = 800 * time.Millisecond
)

// Redirector drives the ordered fallback attempts and the per-wallet
// attempt cap. All collaborators are injected: no globals, no direct
// storage binding.
type Redirector struct {
	opener   Opener
	sleep    func(time.Duration)
	attempts kv.Store
	max      int
	delay    time.Duration
}

func NewRedirector(opener Opener, attempts kv.Store) *Redirector {
	return &Redirector{
		opener:   opener,
		sleep:    time.Sleep,
		attempts: attempts,
		max:      MaxAttempts,
		delay:    targetDelay,
	}
}

// Redirect tries the wallet's targets in order — universal link, deep
// link, store page — pausing between attempts, and returns the first that
// the opener accepts. Each call consumes one attempt from the per-wallet
// budget regardless of outcome.
func (r *Redirector) Redirect(walletID, dappURL string) (Result, error) {
	app, ok := Lookup(walletID)
	if !ok {
		return Result{WalletID: walletID, Target: "none"}, ErrUnknownWallet
	}

	n := r.attemptCount(walletID)
	if n >= r.max {
		return Result{WalletID: walletID, Target: "none", Attempts: n}, ErrTooManyAttempts
	}
	n++
	r.attempts.Set(attemptKey(walletID), strconv.Itoa(n))

	escaped := url.QueryEscape(dappURL)
	targets := []struct {
		name string
		url  string
	}{
		{"universal", fmt.Sprintf(app.UniversalLink, escaped)},
		{"deeplink", fmt.Sprintf(app.DeepLink, escaped)},
		{"store", app.StoreURL},
	}
	for i, tgt := range targets {
		if i > 0 {
			r.sleep(r.delay)
		}
		if err := r.opener.Open(tgt.url); err == nil {
			return Result{WalletID: walletID, Target: tgt.name, URL: tgt.url, Attempts: n}, nil
		}
	}
	return Result{WalletID: walletID, Target: "none", Attempts: n}, ErrAllTargetsFailed
}

// ResetAttempts clears the attempt budget for one wallet.
func (r *Redirector) ResetAttempts(walletID string) {
	r.attempts.Delete(attemptKey(walletID))
}

func (r *Redirector) attemptCount(walletID string) int {
	raw, ok := r.attempts.Get(attemptKey(walletID))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func attemptKey(walletID string) string {
	return "wallet:attempts:" + walletID
}
