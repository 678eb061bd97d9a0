package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHairAttribute is returned for an unknown hair length or density value
var ErrInvalidHairAttribute = errors.New("domain: invalid hair attribute")

// HairLength is the requester's hair length category
type HairLength string

const (
	HairLengthShort  HairLength = "SHORT"
	HairLengthMedium HairLength = "MEDIUM"
	HairLengthLong   HairLength = "LONG"
)

// HairLengths lists every supported length, in display order
var HairLengths = []HairLength{HairLengthShort, HairLengthMedium, HairLengthLong}

// Validate returns an error if the length is not one of the supported categories
func (l HairLength) Validate() error {
	for _, known := range HairLengths {
		if l == known {
			return nil
		}
	}
	return fmt.Errorf("%w: hair length %q", ErrInvalidHairAttribute, string(l))
}

// ParseHairLength parses a case-insensitive hair length
func ParseHairLength(s string) (HairLength, error) {
	l := HairLength(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Validate()
}

// HairDensity is the requester's hair density category
type HairDensity string

const (
	HairDensityThin   HairDensity = "THIN"
	HairDensityMedium HairDensity = "MEDIUM"
	HairDensityThick  HairDensity = "THICK"
)

// HairDensities lists every supported density, in display order
var HairDensities = []HairDensity{HairDensityThin, HairDensityMedium, HairDensityThick}

// Validate returns an error if the density is not one of the supported categories
func (d HairDensity) Validate() error {
	for _, known := range HairDensities {
		if d == known {
			return nil
		}
	}
	return fmt.Errorf("%w: hair density %q", ErrInvalidHairAttribute, string(d))
}

// ParseHairDensity parses a case-insensitive hair density
func ParseHairDensity(s string) (HairDensity, error) {
	d := HairDensity(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Validate()
}

// Client is the requester as seen by the booking core.
// Hair attributes and the verification flag are owned by UserService.
type Client struct {
	ID          int64
	HairLength  HairLength
	HairDensity HairDensity
	IsVerified  bool
	IsAdmin     bool
}

// HairAttributes hair length and density entered by an admin booking on behalf of a client
type HairAttributes struct {
	Length  HairLength
	Density HairDensity
}

// Validate checks both attributes
func (a HairAttributes) Validate() error {
	if err := a.Length.Validate(); err != nil {
		return err
	}
	return a.Density.Validate()
}

// HasHairAttributes returns true if the client has both attributes filled in
func (c *Client) HasHairAttributes() bool {
	return c.HairLength.Validate() == nil && c.HairDensity.Validate() == nil
}
