package network

import (
	"context"
	"sort"
	"sync"

	"github.com/tss-labs/notepool/errors"
)

// Environment is the wallet or node that must follow the active chain.
type Environment interface {
	// SwitchChain asks to use the given chain. It must return an error
	// matching ErrUnknownChain if the chain was never added.
	SwitchChain(ctx context.Context, p Profile) error

	// AddChain makes the chain known to the environment.
	AddChain(ctx context.Context, p Profile) error
}

// Registry resolves profiles and holds the active one. It is safe for
// concurrent use. The active selection lives only in memory.
type Registry struct {
	env Environment

	mu       sync.Mutex
	profiles map[uint64]Profile
	active   uint64
}

// NewRegistry returns a registry with the builtin profiles and the given
// extra ones. Extra profiles replace builtin ones with the same chain id.
// A nil environment switches the active profile locally only.
func NewRegistry(env Environment, extra ...Profile) (*Registry, error) {
	r := &Registry{
		env:      env,
		profiles: make(map[uint64]Profile),
	}
	for _, p := range append(BuiltinProfiles(), extra...) {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "profile %d", p.ChainID)
		}
		r.profiles[p.ChainID] = p
	}
	return r, nil
}

// Resolve returns the profile of the given chain.
func (r *Registry) Resolve(chainID uint64) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(chainID)
}

func (r *Registry) resolve(chainID uint64) (Profile, error) {
	p, ok := r.profiles[chainID]
	if !ok {
		return Profile{}, errors.Wrapf(errors.ErrNotFound, "chain %d", chainID)
	}
	return p, nil
}

// Profiles returns all known profiles ordered by chain id.
func (r *Registry) Profiles() []Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ChainID < all[j].ChainID })
	return all
}

// Active returns the active profile. ok is false before the first switch.
func (r *Registry) Active() (p Profile, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == 0 {
		return Profile{}, false
	}
	return r.profiles[r.active], true
}

// SwitchTo makes the given chain active. Chains unknown to the registry
// fail without contacting the environment. If the environment does not
// know the chain, it is added and the switch is tried once more.
func (r *Registry) SwitchTo(ctx context.Context, chainID uint64) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.resolve(chainID)
	if err != nil {
		return Profile{}, err
	}
	if r.env != nil {
		if err := r.switchEnv(ctx, p); err != nil {
			return Profile{}, err
		}
	}
	r.active = chainID
	return p, nil
}

func (r *Registry) switchEnv(ctx context.Context, p Profile) error {
	err := r.env.SwitchChain(ctx, p)
	if !ErrUnknownChain.Is(err) {
		return err
	}
	if err := r.env.AddChain(ctx, p); err != nil {
		return errors.Wrapf(err, "add chain %s", p.Name)
	}
	if err := r.env.SwitchChain(ctx, p); err != nil {
		return errors.Wrapf(err, "switch to %s after adding it", p.Name)
	}
	return nil
}
