// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"strings"

	"github.com/google/uricomponents/pkg/uri"
	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// Converter converts domain names between their Unicode and ASCII forms.
type Converter interface {
	ToASCII(domain string) (string, error)
	ToUnicode(domain string) (string, error)
}

// IDNAReason identifies a single IDNA processing failure.
type IDNAReason string

// IDNA processing failures.
const (
	ReasonEmptyLabel      IDNAReason = "empty label"
	ReasonLabelTooLong    IDNAReason = "label too long"
	ReasonDomainTooLong   IDNAReason = "domain name too long"
	ReasonLeadingHyphen   IDNAReason = "leading hyphen"
	ReasonTrailingHyphen  IDNAReason = "trailing hyphen"
	ReasonHyphen34        IDNAReason = "hyphen in 3rd and 4th position"
	ReasonDisallowed      IDNAReason = "disallowed character"
	ReasonInvalidPunycode IDNAReason = "invalid punycode"
	ReasonBidi            IDNAReason = "bidi rule violation"
	ReasonContextJ        IDNAReason = "contextj rule violation"
)

// IDNAError reports every failure found while converting a domain name.
type IDNAError struct {
	Domain  string
	Reasons []IDNAReason
}

func (e *IDNAError) Error() string {
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		reasons[i] = string(r)
	}
	return "idna conversion of " + quote(e.Domain) + " failed: " + strings.Join(reasons, ", ")
}

// Unwrap makes an IDNAError a kind of uri.ErrSyntax.
func (e *IDNAError) Unwrap() error { return uri.ErrSyntax }

// Has reports whether r is one of the failures.
func (e *IDNAError) Has(r IDNAReason) bool {
	for _, reason := range e.Reasons {
		if reason == r {
			return true
		}
	}
	return false
}

func quote(s string) string { return `"` + s + `"` }

const (
	acePrefix      = "xn--"
	maxLabelLength = 63
)

// Profiles are split so that a failing conversion can be attributed to the
// rule that rejected it.
var (
	baseProfile = idna.New(
		idna.MapForLookup(),
		// Reg-names may carry "_" and sub-delims alongside Unicode labels.
		idna.StrictDomainName(false),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(false),
	)
	joinersProfile = idna.New(
		idna.MapForLookup(),
		idna.StrictDomainName(false),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
	)
	bidiProfile = idna.New(
		idna.MapForLookup(),
		idna.StrictDomainName(false),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(false),
		idna.BidiRule(),
	)
)

// IDNA is the Converter implementing UTS #46 non-transitional processing
// with the BiDi and ContextJ checks enabled.
var IDNA Converter = idnaConverter{}

type idnaConverter struct{}

// ToASCII converts domain to its A-label form.
func (idnaConverter) ToASCII(domain string) (string, error) {
	return convert(domain, (*idna.Profile).ToASCII)
}

// ToUnicode converts domain to its U-label form.
func (idnaConverter) ToUnicode(domain string) (string, error) {
	return convert(domain, (*idna.Profile).ToUnicode)
}

func convert(domain string, fn func(*idna.Profile, string) (string, error)) (string, error) {
	labels := strings.Split(domain, ".")
	absolute := len(labels) > 1 && labels[len(labels)-1] == ""
	if absolute {
		labels = labels[:len(labels)-1]
	}
	var reasons []IDNAReason
	add := func(r IDNAReason) {
		for _, seen := range reasons {
			if seen == r {
				return
			}
		}
		reasons = append(reasons, r)
	}
	out := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			add(ReasonEmptyLabel)
			continue
		}
		converted, err := fn(baseProfile, label)
		if err != nil {
			if strings.HasPrefix(strings.ToLower(label), acePrefix) {
				add(ReasonInvalidPunycode)
			} else {
				add(ReasonDisallowed)
			}
			continue
		}
		if _, err := fn(joinersProfile, label); err != nil {
			add(ReasonContextJ)
		}
		ascii, unicode := converted, label
		if !isASCII(converted) {
			ascii, unicode = strings.ToLower(label), converted
		}
		for _, r := range checkLabel(ascii, unicode) {
			add(r)
		}
		out[i] = converted
	}
	if len(reasons) == 0 {
		if _, err := fn(bidiProfile, strings.Join(labels, ".")); err != nil {
			add(ReasonBidi)
		}
	}
	result := strings.Join(out, ".")
	if len(reasons) == 0 {
		if ascii, err := baseProfile.ToASCII(result); err == nil && len(ascii) > 253 {
			add(ReasonDomainTooLong)
		}
	}
	if len(reasons) > 0 {
		return "", &IDNAError{Domain: domain, Reasons: reasons}
	}
	if absolute {
		result += "."
	}
	return result, nil
}

// checkLabel applies the RFC 1035 length rule to the A-label and the RFC 5891
// hyphen rules to the U-label.
func checkLabel(ascii, unicode string) []IDNAReason {
	var reasons []IDNAReason
	if len(ascii) > maxLabelLength {
		reasons = append(reasons, ReasonLabelTooLong)
	}
	if strings.HasPrefix(unicode, "-") {
		reasons = append(reasons, ReasonLeadingHyphen)
	}
	if strings.HasSuffix(unicode, "-") {
		reasons = append(reasons, ReasonTrailingHyphen)
	}
	if r := []rune(unicode); len(r) >= 4 && r[2] == '-' && r[3] == '-' && !strings.HasPrefix(strings.ToLower(unicode), acePrefix) {
		reasons = append(reasons, ReasonHyphen34)
	}
	return reasons
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// AsIDNAError returns the IDNAError held by err, if any.
func AsIDNAError(err error) (*IDNAError, bool) {
	var e *IDNAError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
