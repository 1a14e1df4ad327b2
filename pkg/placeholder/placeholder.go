// Package placeholder substitutes %name% tokens in manifest paths.
//
// Substitution has the semantics of a single-pass translation table: at each
// position the longest matching token wins, and substituted text is never
// scanned again.
package placeholder

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// Bower is the placeholder for the bower assets directory
	Bower = "%bower_asset_path%"

	// Npm is the placeholder for the npm assets directory
	Npm = "%npm_asset_path%"
)

var tokenRe = regexp.MustCompile(`%[A-Za-z0-9_.\-]+%`)

// Resolver replaces placeholders in strings
type Resolver struct {
	values   map[string]string
	replacer *strings.Replacer
	l        *zap.Logger
	warned   map[string]bool
}

// Option for the resolver
type Option func(*Resolver)

// WithLogger sets a logger, used to warn about placeholders without a value
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.l = l
		}
	}
}

// Key normalizes a placeholder name to its %name% form
func Key(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return "%" + strings.Trim(name, "%") + "%"
}

// New builds a resolver for a set of placeholders.
//
// Keys may be given with or without the surrounding percent signs. An empty
// value is legit: the placeholder is then replaced by the empty string.
func New(values map[string]string, opts ...Option) *Resolver {
	r := &Resolver{
		values: make(map[string]string, len(values)),
		l:      zap.NewNop(),
		warned: make(map[string]bool),
	}
	for _, apply := range opts {
		apply(r)
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		key := Key(k)
		if key == "" {
			continue
		}
		if _, dup := r.values[key]; !dup {
			keys = append(keys, key)
		}
		r.values[key] = v
	}

	// longest keys first: strings.Replacer gives priority to earlier pairs
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	oldnew := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		oldnew = append(oldnew, k, r.values[k])
	}
	r.replacer = strings.NewReplacer(oldnew...)

	return r
}

// Resolve substitutes all known placeholders in s
func (r *Resolver) Resolve(s string) string {
	for _, token := range tokenRe.FindAllString(s, -1) {
		if v, ok := r.values[token]; ok && v == "" && !r.warned[token] {
			r.warned[token] = true
			r.l.Warn("placeholder has no configured value, replaced by an empty string", zap.String("placeholder", token))
		}
	}
	return r.replacer.Replace(s)
}

// Unresolved lists the %name% tokens in s which are not known placeholders
func (r *Resolver) Unresolved(s string) []string {
	var unknown []string
	for _, token := range tokenRe.FindAllString(s, -1) {
		if _, ok := r.values[token]; !ok {
			unknown = append(unknown, token)
		}
	}
	return unknown
}

// Values returns a copy of the placeholders known to this resolver
func (r *Resolver) Values() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}
