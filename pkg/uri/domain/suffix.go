// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"strings"

	"github.com/google/uricomponents/pkg/uri"
	"golang.org/x/net/publicsuffix"
)

// Resolver finds the public suffix of a domain name.
type Resolver interface {
	// PublicSuffix returns the public suffix of domain and whether it is
	// managed by ICANN rather than privately.
	PublicSuffix(domain string) (suffix string, icann bool)
}

type publicSuffixList struct{}

func (publicSuffixList) PublicSuffix(domain string) (string, bool) {
	return publicsuffix.PublicSuffix(domain)
}

// PublicSuffixList resolves suffixes with the list compiled into
// golang.org/x/net/publicsuffix.
var PublicSuffixList Resolver = publicSuffixList{}

// Info splits a domain name around its public suffix.
type Info struct {
	PublicSuffix      string `json:"public_suffix" yaml:"public_suffix" toml:"public_suffix"`
	RegistrableDomain string `json:"registrable_domain,omitempty" yaml:"registrable_domain,omitempty" toml:"registrable_domain,omitempty"`
	SubDomain         string `json:"sub_domain,omitempty" yaml:"sub_domain,omitempty" toml:"sub_domain,omitempty"`
	ICANN             bool   `json:"icann" yaml:"icann" toml:"icann"`
}

// Resolve splits the domain with r. The root label is ignored.
func (d Domain) Resolve(r Resolver) (Info, error) {
	name := strings.TrimSuffix(d.String(), ".")
	if name == "" {
		return Info{}, uri.Syntaxf("can not resolve an empty domain")
	}
	suffix, icann := r.PublicSuffix(name)
	info := Info{PublicSuffix: suffix, ICANN: icann}
	if suffix == name || !strings.HasSuffix(name, "."+suffix) {
		return info, nil
	}
	rest := strings.TrimSuffix(name, "."+suffix)
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		info.SubDomain = rest[:i]
		info.RegistrableDomain = rest[i+1:] + "." + suffix
	} else {
		info.RegistrableDomain = rest + "." + suffix
	}
	return info, nil
}

func (d Domain) registrable(r Resolver) (Info, error) {
	info, err := d.Resolve(r)
	if err != nil {
		return Info{}, err
	}
	if info.RegistrableDomain == "" {
		return Info{}, uri.Syntaxf("domain %q has no registrable domain", d.String())
	}
	return info, nil
}

func (d Domain) rebuild(parts ...string) (Domain, error) {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	s := strings.Join(nonEmpty, ".")
	if d.IsAbsolute() {
		s += "."
	}
	nd, err := New(s)
	if err != nil {
		return Domain{}, err
	}
	if nd.Equal(d) {
		return d, nil
	}
	return nd, nil
}

// WithSubDomain replaces the labels preceding the registrable domain. An
// empty sub removes them.
func (d Domain) WithSubDomain(r Resolver, sub string) (Domain, error) {
	info, err := d.registrable(r)
	if err != nil {
		return Domain{}, err
	}
	return d.rebuild(sub, info.RegistrableDomain)
}

// WithRegistrableDomain replaces the registrable domain, keeping the
// sub-domain.
func (d Domain) WithRegistrableDomain(r Resolver, registrable string) (Domain, error) {
	info, err := d.registrable(r)
	if err != nil {
		return Domain{}, err
	}
	if registrable == "" {
		return Domain{}, uri.Syntaxf("the registrable domain can not be empty")
	}
	return d.rebuild(info.SubDomain, registrable)
}

// WithPublicSuffix replaces the public suffix, keeping the other labels.
func (d Domain) WithPublicSuffix(r Resolver, suffix string) (Domain, error) {
	info, err := d.registrable(r)
	if err != nil {
		return Domain{}, err
	}
	if suffix == "" {
		return Domain{}, uri.Syntaxf("the public suffix can not be empty")
	}
	label := strings.TrimSuffix(info.RegistrableDomain, "."+info.PublicSuffix)
	return d.rebuild(info.SubDomain, label, suffix)
}
