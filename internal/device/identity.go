// Package device describes the identity of an input device and how a
// profile's identity is matched against a concrete device.
package device

import (
	"fmt"
	"sort"
	"strings"
)

// BusType is the bus an input device is attached to (BUS_* in linux/input.h).
type BusType uint16

// Bus types.
const (
	BusPCI       BusType = 0x01
	BusISAPnP    BusType = 0x02
	BusUSB       BusType = 0x03
	BusHIL       BusType = 0x04
	BusBluetooth BusType = 0x05
	BusVirtual   BusType = 0x06
	BusISA       BusType = 0x10
	BusI8042     BusType = 0x11
	BusXTKbd     BusType = 0x12
	BusRS232     BusType = 0x13
	BusGameport  BusType = 0x14
	BusParport   BusType = 0x15
	BusAmiga     BusType = 0x16
	BusADB       BusType = 0x17
	BusI2C       BusType = 0x18
	BusHost      BusType = 0x19
	BusGSC       BusType = 0x1a
	BusAtari     BusType = 0x1b
	BusSPI       BusType = 0x1c
)

var busNames = map[BusType]string{
	BusPCI:       "pci",
	BusISAPnP:    "isapnp",
	BusUSB:       "usb",
	BusHIL:       "hil",
	BusBluetooth: "bluetooth",
	BusVirtual:   "virtual",
	BusISA:       "isa",
	BusI8042:     "i8042",
	BusXTKbd:     "xtkbd",
	BusRS232:     "rs232",
	BusGameport:  "gameport",
	BusParport:   "parport",
	BusAmiga:     "amiga",
	BusADB:       "adb",
	BusI2C:       "i2c",
	BusHost:      "host",
	BusGSC:       "gsc",
	BusAtari:     "atari",
	BusSPI:       "spi",
}

// String returns the lower-case bus name used in profiles.
func (b BusType) String() string {
	if name, ok := busNames[b]; ok {
		return name
	}
	return fmt.Sprintf("bus(0x%02x)", uint16(b))
}

// BusTypeFromName returns the bus type for a name (case-insensitive).
func BusTypeFromName(name string) (BusType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for bus, n := range busNames {
		if n == name {
			return bus, true
		}
	}
	return 0, false
}

// BusNames returns all known bus names, sorted.
func BusNames() []string {
	names := make([]string, 0, len(busNames))
	for _, n := range busNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// InputID is the kernel's input_id of a device.
type InputID struct {
	BusType BusType
	Vendor  uint16
	Product uint16
	Version uint16
}

// String formats the ID like "usb:046d:c215:0111".
func (id InputID) String() string {
	return fmt.Sprintf("%s:%04x:%04x:%04x", id.BusType, id.Vendor, id.Product, id.Version)
}

// SameModel returns true if the bus, vendor and product are the same.
func (id InputID) SameModel(other InputID) bool {
	return id.BusType == other.BusType && id.Vendor == other.Vendor && id.Product == other.Product
}

// Identity identifies a device: its input ID, name, physical location and
// optional unique identifier.
//
// In a profile, an empty Phys means the profile is not bound to a physical
// location, and a nil Uniq means it is not bound to a unique device.
type Identity struct {
	InputID InputID
	Name    string
	Phys    string
	Uniq    *string
}

// HasUniq returns true if the identity carries a unique identifier.
func (i Identity) HasUniq() bool {
	return i.Uniq != nil
}

// UniqString returns the unique identifier or the empty string.
func (i Identity) UniqString() string {
	if i.Uniq == nil {
		return ""
	}
	return *i.Uniq
}

// String returns a human-readable description of the identity.
func (i Identity) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", i.InputID, i.Name)
	if i.Phys != "" {
		fmt.Fprintf(&b, " phys=%s", i.Phys)
	}
	if i.Uniq != nil {
		fmt.Fprintf(&b, " uniq=%s", *i.Uniq)
	}
	return b.String()
}
