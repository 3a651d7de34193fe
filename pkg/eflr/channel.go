package eflr

import (
	"fmt"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/consts"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
)

// ChannelInfo is the side-table entry a Channel EFLR contributes to its
// owning Logical File: enough to decode that channel's slot out of every
// Frame-Data IFLR that references it.
type ChannelInfo struct {
	Name            rpcode.ObName
	RepCode         int
	Dimension       []int
	Units           string
	ElementsPerSlot int
}

// ExtractChannels builds one ChannelInfo per Object in a Channel Set
// (Set.Type == "CHANNEL"). Objects missing REPRESENTATION-CODE default to
// IDENT per the Template/defaulting rules component.Set already resolved.
func ExtractChannels(set *component.Set) ([]ChannelInfo, error) {
	if set.Type != "CHANNEL" {
		return nil, fmt.Errorf("eflr: ExtractChannels called on Set.Type %q", set.Type)
	}
	infos := make([]ChannelInfo, 0, len(set.Objects))
	for _, obj := range set.Objects {
		info := ChannelInfo{Name: obj.Name, RepCode: consts.RC_IDENT}
		if attr, ok := set.ObjectAttribute(obj, "REPRESENTATION-CODE"); ok {
			if n, ok := asInt(attr.Value); ok {
				info.RepCode = n
			}
		}
		if attr, ok := set.ObjectAttribute(obj, "DIMENSION"); ok {
			info.Dimension = asInts(attr.Value)
		}
		if attr, ok := set.ObjectAttribute(obj, "UNITS"); ok {
			if s, ok := asString(attr.Value); ok {
				info.Units = s
			}
		}
		info.ElementsPerSlot = productOf(info.Dimension)
		infos = append(infos, info)
	}
	return infos, nil
}
