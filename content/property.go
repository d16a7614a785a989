package content

import "strconv"

// PropertyID identifies a cell property.
type PropertyID uint16

// Properties understood by the engine. Hosts may define their own ids
// starting at PropUser.
const (
	PropValue PropertyID = iota + 1
	PropCaption
	PropFontStyle
	PropFontSizeRatio
	PropFontColor
	PropBackground
	PropEnabled
	PropVisible
	PropItems
	PropButtons
	PropTabIndex

	// PropUser is the first id available to hosts.
	PropUser PropertyID = 0x100
)

var propertyNames = map[PropertyID]string{
	PropValue:         "value",
	PropCaption:       "caption",
	PropFontStyle:     "font-style",
	PropFontSizeRatio: "font-size-ratio",
	PropFontColor:     "font-color",
	PropBackground:    "background",
	PropEnabled:       "enabled",
	PropVisible:       "visible",
	PropItems:         "items",
	PropButtons:       "buttons",
	PropTabIndex:      "tab-index",
}

// String returns the property name.
func (p PropertyID) String() string {
	if n, ok := propertyNames[p]; ok {
		return n
	}
	return "property(" + strconv.Itoa(int(p)) + ")"
}

// ParseProperty returns the property with the given name.
func ParseProperty(name string) (PropertyID, bool) {
	for id, n := range propertyNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// Key packs a column id and a property id into one store key.
type Key uint32

// MakeKey returns (column << 16) | property.
func MakeKey(column ColumnID, prop PropertyID) Key {
	return Key(uint32(column)<<16 | uint32(prop))
}

// Column returns the column part of the key.
func (k Key) Column() ColumnID { return ColumnID(k >> 16) }

// Property returns the property part of the key.
func (k Key) Property() PropertyID { return PropertyID(k & 0xffff) }
