package eflr

import (
	"fmt"

	"github.com/bgrewell/dlis-kit/pkg/component"
	"github.com/bgrewell/dlis-kit/pkg/rpcode"
)

// FrameInfo is the side-table entry a Frame EFLR contributes: the ordered
// channel list every Frame-Data IFLR referencing this frame decodes
// against. ChannelNames is resolved lazily by the Logical File against its
// channels table; it is kept here unresolved so Frame and Channel EFLRs
// can be classified in either order within a pass.
type FrameInfo struct {
	Name         rpcode.ObName
	ChannelNames []rpcode.ObName
	Encrypted    bool
}

// ExtractFrames builds one FrameInfo per Object in a Frame Set
// (Set.Type == "FRAME").
func ExtractFrames(set *component.Set) ([]FrameInfo, error) {
	if set.Type != "FRAME" {
		return nil, fmt.Errorf("eflr: ExtractFrames called on Set.Type %q", set.Type)
	}
	infos := make([]FrameInfo, 0, len(set.Objects))
	for _, obj := range set.Objects {
		info := FrameInfo{Name: obj.Name}
		if attr, ok := set.ObjectAttribute(obj, "CHANNELS"); ok {
			info.ChannelNames = asObNames(attr.Value)
		}
		if attr, ok := set.ObjectAttribute(obj, "ENCRYPTED"); ok {
			if b, ok := asBool(attr.Value); ok {
				info.Encrypted = b
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
