// Package netgate implements the wifi-only upload policy gate.
package netgate

import (
	"net"
	"strings"
)

// NetworkType is the coarse link classification the policy cares about.
type NetworkType string

const (
	TypeWifi     NetworkType = "wifi"
	TypeEthernet NetworkType = "ethernet"
	TypeCellular NetworkType = "cellular"
	TypeUnknown  NetworkType = "unknown"
	TypeNone     NetworkType = "none"
)

// StateProvider reports the current network link type. The concrete
// implementation is platform-dependent, so the gate only depends on this
// interface and tests substitute a fake.
type StateProvider interface {
	NetworkType() (NetworkType, error)
}

// Gate decides whether an upload batch may proceed under the wifi-only
// policy.
type Gate struct {
	provider StateProvider
}

func New(provider StateProvider) *Gate {
	return &Gate{provider: provider}
}

// Allowed applies the policy. With wifi-only off, every network qualifies.
// With it on, wifi, ethernet and unknown links are allowed (an unrecognized
// connection is assumed safe rather than blocking the user) and cellular is
// denied. A provider error also allows: availability wins over strict
// enforcement.
func (g *Gate) Allowed(wifiOnly bool) bool {
	if !wifiOnly {
		return true
	}

	t, err := g.provider.NetworkType()
	if err != nil {
		return true
	}

	switch t {
	case TypeWifi, TypeEthernet, TypeUnknown:
		return true
	default:
		return false
	}
}

// InterfaceProvider classifies the link from the name of the first active
// non-loopback interface. Interface naming is only a heuristic; anything
// unrecognized comes back as unknown, which the gate allows.
type InterfaceProvider struct{}

func (InterfaceProvider) NetworkType() (NetworkType, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return TypeUnknown, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		return classifyInterfaceName(iface.Name), nil
	}

	return TypeNone, nil
}

func classifyInterfaceName(name string) NetworkType {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "wl"), strings.Contains(name, "wifi"):
		return TypeWifi
	case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
		return TypeEthernet
	case strings.HasPrefix(name, "wwan"), strings.HasPrefix(name, "rmnet"), strings.HasPrefix(name, "ppp"):
		return TypeCellular
	default:
		return TypeUnknown
	}
}
