package profile

import (
	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/profile/handler"
)

// Summary is a plain view of a profile for reporting.
type Summary struct {
	Name        string       `yaml:"name" json:"name"`
	AutoLoad    bool         `yaml:"autoLoad" json:"autoLoad"`
	Identity    IdentityInfo `yaml:"identity" json:"identity"`
	ShiftLevels [][]string   `yaml:"shiftLevels,omitempty" json:"shiftLevels,omitempty"`
	Keys        []KeySummary `yaml:"keys,omitempty" json:"keys,omitempty"`
}

// IdentityInfo is the device identity of a Summary.
type IdentityInfo struct {
	BusType string `yaml:"busType" json:"busType"`
	Vendor  uint16 `yaml:"vendor" json:"vendor"`
	Product uint16 `yaml:"product" json:"product"`
	Version uint16 `yaml:"version" json:"version"`
	Name    string `yaml:"name" json:"name"`
	Phys    string `yaml:"phys,omitempty" json:"phys,omitempty"`
	Uniq    string `yaml:"uniq,omitempty" json:"uniq,omitempty"`
}

// KeySummary describes the handler tree of one key.
type KeySummary struct {
	Code            int            `yaml:"code" json:"code"`
	Name            string         `yaml:"name" json:"name"`
	CancelOnRelease bool           `yaml:"cancelOnRelease" json:"cancelOnRelease"`
	Action          string         `yaml:"action,omitempty" json:"action,omitempty"`
	Shifts          []ShiftSummary `yaml:"shifts,omitempty" json:"shifts,omitempty"`
}

// ShiftSummary describes a shift handler.
type ShiftSummary struct {
	From   int            `yaml:"from" json:"from"`
	To     int            `yaml:"to" json:"to"`
	Action string         `yaml:"action,omitempty" json:"action,omitempty"`
	Shifts []ShiftSummary `yaml:"shifts,omitempty" json:"shifts,omitempty"`
}

// Summary returns a plain view of the profile.
func (p *Profile) Summary() Summary {
	id := p.Identity
	s := Summary{
		Name:     p.Name,
		AutoLoad: p.AutoLoad,
		Identity: IdentityInfo{
			BusType: id.InputID.BusType.String(),
			Vendor:  id.InputID.Vendor,
			Product: id.InputID.Product,
			Version: id.InputID.Version,
			Name:    id.Name,
			Phys:    id.Phys,
			Uniq:    id.UniqString(),
		},
	}

	for _, l := range p.levels {
		states := make([]string, l.NumStates())
		for i, st := range l.States() {
			states[i] = st.String()
		}
		s.ShiftLevels = append(s.ShiftLevels, states)
	}

	for _, kp := range p.keys {
		ks := KeySummary{
			Code:            int(kp.Code),
			Name:            kp.Code.String(),
			CancelOnRelease: kp.NeedsCancelOnRelease(),
		}
		ks.Action, ks.Shifts = summarizeChildren(&kp.Tree)
		s.Keys = append(s.Keys, ks)
	}
	return s
}

func summarizeChildren(t *handler.Tree) (string, []ShiftSummary) {
	var root ShiftSummary
	// open[d] receives the children visited at depth d. A sibling is
	// appended only once the previous sibling's subtree is complete.
	open := []*ShiftSummary{&root}
	_ = handler.Walk(t, func(depth int, h *handler.ShiftHandler, leaf action.Action) error {
		open = open[:depth+1]
		parent := open[depth]
		if leaf != nil {
			parent.Action = action.Describe(leaf)
			return nil
		}
		parent.Shifts = append(parent.Shifts, ShiftSummary{From: h.From, To: h.To})
		open = append(open, &parent.Shifts[len(parent.Shifts)-1])
		return nil
	})
	return root.Action, root.Shifts
}
