package keymap

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Resolver looks up the action of a key press. A key claimed by an earlier
// binding keeps that action.
type Resolver struct {
	bindings []Binding
	actions  map[string]Action
	keys     map[Action][]string
}

// NewResolver indexes bindings in order.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		actions:  make(map[string]Action),
		keys:     make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, taken := r.actions[k]; !taken {
				r.actions[k] = b.Action
			}
		}
		r.keys[b.Action] = lo.Uniq(append(r.keys[b.Action], b.Keys...))
	}
	return r
}

// Resolve returns the action bound to key, or "" when there is none.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the distinct keys bound to action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Help renders one "keys  description" row per action, in binding order.
func (r *Resolver) Help() []string {
	var rows []string
	seen := make(map[Action]bool)
	for _, b := range r.bindings {
		if seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		names := lo.Map(r.KeysFor(b.Action), func(k string, _ int) string { return keyName(k) })
		rows = append(rows, fmt.Sprintf("%-14s %s", strings.Join(names, "/"), b.Description))
	}
	return rows
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
