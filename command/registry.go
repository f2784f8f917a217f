package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors
var (
	ErrEmptyName    = errors.New("empty command name")
	ErrNilCommand   = errors.New("nil command")
	ErrNoSignatures = errors.New("registration needs at least one owner and one target signature")
	ErrNotFound     = errors.New("no compatible command")
	ErrInvariant    = errors.New("resolution invariant violated")
)

// entryKey identifies one registration: a command name plus one
// owner/target signature pair.
type entryKey struct {
	name   string
	owner  string
	target string
}

// Registry stores commands under (name, owner signature, target
// signature) keys. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[entryKey]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[entryKey]Command)}
}

// Register writes cmd under the full cross product of owner and
// target signatures. Existing entries are overwritten only when
// replace is true; with replace false they are kept, the remaining
// pairs are still written, and the call still succeeds. Both signature
// sets must be non-empty.
func (r *Registry) Register(name string, owners, targets []Signature, cmd Command, replace bool) error {
	if name == "" {
		return ErrEmptyName
	}
	if cmd == nil {
		return ErrNilCommand
	}
	if len(owners) == 0 || len(targets) == 0 {
		return fmt.Errorf("%w: command %q", ErrNoSignatures, name)
	}
	for _, s := range append(append([]Signature{}, owners...), targets...) {
		if s.IsZero() {
			return fmt.Errorf("%w: command %q", ErrBadSignature, name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range owners {
		for _, t := range targets {
			k := entryKey{name: name, owner: o.String(), target: t.String()}
			if _, exists := r.entries[k]; exists && !replace {
				continue
			}
			r.entries[k] = cmd
		}
	}
	return nil
}

// RegisterCommand registers a Signed command under its derived name
// (see NameOf) and returns that name.
func (r *Registry) RegisterCommand(cmd Command, replace bool) (string, error) {
	if cmd == nil {
		return "", ErrNilCommand
	}
	name := NameOf(cmd)
	if name == "" {
		return "", fmt.Errorf("%w: cannot derive a name for %T", ErrEmptyName, cmd)
	}
	s, ok := cmd.(Signed)
	if !ok {
		return "", fmt.Errorf("%w: %T does not declare signatures", ErrNoSignatures, cmd)
	}
	if err := r.Register(name, s.OwnerSignatures(), s.TargetSignatures(), cmd, replace); err != nil {
		return "", err
	}
	return name, nil
}

// IsRegistered returns true if any entry exists under the name.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.entries {
		if k.name == name {
			return true
		}
	}
	return false
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	for k := range r.entries {
		seen[k.name] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Resolve picks the registration of name most specific to the given
// owner and target signatures. hasTarget is false when the target
// reports no signature of its own; such targets are served only by
// wildcard-target entries.
//
// Candidates are the entries whose name matches, whose owner is the
// concrete owner or the wildcard, and whose target is the concrete
// target or the wildcard. The winner is chosen by tier:
//
//  1. concrete owner, concrete target
//  2. wildcard owner, concrete target
//  3. concrete owner, wildcard target
//  4. wildcard owner, wildcard target
//
// Tier keys are unique, so resolution is deterministic. An empty
// winner with a non-empty candidate set cannot happen; if it ever
// does, Resolve reports ErrInvariant rather than guessing.
func (r *Registry) Resolve(name string, owner Signature, target Signature, hasTarget bool) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := make(map[entryKey]Command)
	for k, cmd := range r.entries {
		if k.name != name {
			continue
		}
		if k.owner != owner.String() && k.owner != wildcardText {
			continue
		}
		if hasTarget {
			if k.target != target.String() && k.target != wildcardText {
				continue
			}
		} else if k.target != wildcardText {
			continue
		}
		candidates[k] = cmd
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q for owner %q", ErrNotFound, name, owner.String())
	}

	tgt := wildcardText
	if hasTarget {
		tgt = target.String()
	}
	tiers := []entryKey{
		{name: name, owner: owner.String(), target: tgt},
		{name: name, owner: wildcardText, target: tgt},
		{name: name, owner: owner.String(), target: wildcardText},
		{name: name, owner: wildcardText, target: wildcardText},
	}
	for _, k := range tiers {
		if cmd, ok := candidates[k]; ok {
			return cmd, nil
		}
	}
	return nil, fmt.Errorf("%w: %q has candidates but no tier matched", ErrInvariant, name)
}
