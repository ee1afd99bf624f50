// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

const (
	defaultMimeType   = "text/plain"
	defaultParameters = "charset=us-ascii"
	binaryParameter   = "base64"
)

var (
	mimeTypeRE  = regexp.MustCompile(`^\w+/[-.\w]+(?:\+[-.\w]+)?$`)
	parameterRE = regexp.MustCompile(`^[^=;,]+=[^=;,]*$`)
	// The data is a path suffix: "," is allowed, "?" and "#" are escaped.
	dataSet = pathSet
)

// DataPath is the path of a data URI (RFC 2397):
//
//	[<mimetype>][;<name>=<value>]*[;base64],<data>
//
// The empty path is "text/plain;charset=us-ascii,".
type DataPath struct {
	mimeType string
	params   []string
	binary   bool
	data     string
}

// ParseDataPath parses and validates s. A base64 payload must be strictly
// valid base64.
func ParseDataPath(s string) (DataPath, error) {
	if err := codec.Filter(s); err != nil {
		return DataPath{}, err
	}
	if s == "" {
		return DataPath{mimeType: defaultMimeType, params: []string{defaultParameters}}, nil
	}
	meta, data, ok := strings.Cut(s, ",")
	if !ok {
		return DataPath{}, uri.Syntaxf("data path %q has no data separator", s)
	}
	d := DataPath{data: codec.Encode(data, dataSet)}
	mime, params, _ := strings.Cut(meta, ";")
	if err := d.setMimeType(mime, params == ""); err != nil {
		return DataPath{}, err
	}
	if params != "" {
		if err := d.setParameters(params, true); err != nil {
			return DataPath{}, err
		}
	}
	if err := d.validateData(); err != nil {
		return DataPath{}, err
	}
	return d, nil
}

// NewDataPathFrom coerces v to a string and parses it. A nil v is the
// default data path.
func NewDataPathFrom(v any) (DataPath, error) {
	s, _, err := codec.Stringify(v)
	if err != nil {
		return DataPath{}, err
	}
	return ParseDataPath(s)
}

func (d *DataPath) setMimeType(mime string, bare bool) error {
	if mime == "" {
		d.mimeType = defaultMimeType
		if bare {
			d.params = []string{defaultParameters}
		}
		return nil
	}
	if !mimeTypeRE.MatchString(mime) {
		return uri.Syntaxf("invalid mime type %q", mime)
	}
	d.mimeType = strings.ToLower(mime)
	return nil
}

// setParameters validates the ";" separated list in s. When allowBinary
// is set a final "base64" marks the data as binary.
func (d *DataPath) setParameters(s string, allowBinary bool) error {
	params := strings.Split(s, ";")
	binary := false
	if allowBinary && strings.EqualFold(params[len(params)-1], binaryParameter) {
		binary = true
		params = params[:len(params)-1]
	}
	for _, p := range params {
		if !parameterRE.MatchString(p) {
			return uri.Syntaxf("invalid mediatype parameter %q", p)
		}
		if name, _, _ := strings.Cut(p, "="); strings.EqualFold(name, binaryParameter) {
			return uri.Syntaxf("parameter name %q is reserved", name)
		}
	}
	d.params = params
	d.binary = binary
	return nil
}

func (d DataPath) validateData() error {
	if !d.binary {
		return nil
	}
	if _, err := base64.StdEncoding.Strict().DecodeString(codec.DecodeAll(d.data)); err != nil {
		return uri.Syntaxf("invalid base64 data: %v", err)
	}
	return nil
}

// orDefault maps the zero value to the default path.
func (d DataPath) orDefault() DataPath {
	if d.mimeType == "" {
		return DataPath{mimeType: defaultMimeType, params: []string{defaultParameters}}
	}
	return d
}

// MimeType returns the lowercase mime type.
func (d DataPath) MimeType() string { return d.orDefault().mimeType }

// Parameters returns the mediatype parameters joined with ";", without the
// base64 marker.
func (d DataPath) Parameters() string { return strings.Join(d.orDefault().params, ";") }

// MediaType returns the mime type and its parameters.
func (d DataPath) MediaType() string {
	d = d.orDefault()
	if len(d.params) == 0 {
		return d.mimeType
	}
	return d.mimeType + ";" + d.Parameters()
}

// IsBinaryData reports whether the data is base64 encoded.
func (d DataPath) IsBinaryData() bool { return d.binary }

// Data returns the encoded payload.
func (d DataPath) Data() string { return d.data }

// Value returns the encoded path. It is always defined.
func (d DataPath) Value() (string, bool) {
	s := d.MediaType()
	if d.binary {
		s += ";" + binaryParameter
	}
	return s + "," + d.data, true
}

// Decoded returns the path with its payload decoded.
func (d DataPath) Decoded() (string, bool) {
	s, _ := d.Value()
	return codec.DecodeAll(s), true
}

func (d DataPath) String() string {
	s, _ := d.Value()
	return s
}

func (d DataPath) URIComponent() string { return d.String() }

// Equal reports whether both paths serialize identically.
func (d DataPath) Equal(o DataPath) bool { return d.String() == o.String() }

// WithParameters returns the path with its mediatype parameters replaced
// by the ";" separated list in s.
func (d DataPath) WithParameters(s string) (DataPath, error) {
	if s == d.Parameters() {
		return d, nil
	}
	if err := codec.Filter(s); err != nil {
		return DataPath{}, err
	}
	nd := d.orDefault()
	if s == "" {
		nd.params = nil
		return nd, nil
	}
	if err := nd.setParameters(s, false); err != nil {
		return DataPath{}, err
	}
	nd.binary = d.binary
	return nd, nil
}

// ToBinary returns the path with its payload base64 encoded.
func (d DataPath) ToBinary() DataPath {
	if d.binary {
		return d
	}
	nd := d
	nd.binary = true
	nd.data = base64.StdEncoding.EncodeToString([]byte(codec.DecodeAll(d.data)))
	return nd
}

// ToASCII returns the path with its payload base64 decoded and
// percent-encoded.
func (d DataPath) ToASCII() DataPath {
	if !d.binary {
		return d
	}
	// The payload was validated on construction.
	raw, _ := base64.StdEncoding.DecodeString(codec.DecodeAll(d.data))
	nd := d
	nd.binary = false
	nd.data = codec.EscapeAll(string(raw), dataSet)
	return nd
}

// WithContent returns the data path parsed from v.
func (d DataPath) WithContent(v any) (DataPath, error) {
	nd, err := NewDataPathFrom(v)
	if err != nil {
		return DataPath{}, err
	}
	if nd.Equal(d) {
		return d, nil
	}
	return nd, nil
}

var _ uri.Decodable = DataPath{}
