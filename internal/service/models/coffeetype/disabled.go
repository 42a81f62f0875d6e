package coffeetype

import "errors"

// DisabledFlag controls whether a coffee type is shown on the storefront.
type DisabledFlag string

const (
	// Enabled coffee types are visible.
	Enabled DisabledFlag = "N"
	// Disabled coffee types are hidden.
	Disabled DisabledFlag = "Y"
)

var ErrInvalidDisabledFlag = errors.New("invalid disabled flag")

func (f DisabledFlag) String() string {
	return string(f)
}

// ParseDisabledFlag accepts exactly "Y" or "N".
func ParseDisabledFlag(s string) (DisabledFlag, error) {
	switch s {
	case Enabled.String():
		return Enabled, nil
	case Disabled.String():
		return Disabled, nil
	default:
		return "", ErrInvalidDisabledFlag
	}
}
