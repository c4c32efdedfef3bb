package vlanrange

import (
	"cmp"
	"fmt"

	"github.com/henderiw/rangemap/pkg/rangemap"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	// MaxVLANID is the highest assignable VLAN ID.
	MaxVLANID = 4095
)

// VLANRange tracks contiguous blocks of VLAN IDs and the label sets
// claimed on them. VLANs 0, 1 and 4095 are reserved and pre-claimed.
type VLANRange interface {
	Get(id int64) (labels.Set, error)
	Claim(start, stop int64, d labels.Set) error
	ClaimID(id int64, d labels.Set) error
	Release(start, stop int64) error

	Count() int
	Has(id int64) bool

	Ranges() []rangemap.MappedRange[int64, labels.Set]
	GetByLabel(selector labels.Selector) []rangemap.MappedRange[int64, labels.Set]
}

var initEntries = map[int64]labels.Set{
	0:    map[string]string{"type": "untagged", "status": "reserved"},
	1:    map[string]string{"type": "untagged", "status": "reserved"},
	4095: map[string]string{"type": "untagged", "status": "reserved"},
}

func New() (VLANRange, error) {
	m := rangemap.NewFunc[int64, labels.Set](cmp.Compare[int64], labels.Equals)
	for id, d := range initEntries {
		if err := m.Set(d, rangemap.At(id), rangemap.At(id+1)); err != nil {
			return nil, err
		}
	}
	return &vlanRange{m: m}, nil
}

type vlanRange struct {
	m *rangemap.RangeMap[int64, labels.Set]
}

func validateID(id int64) error {
	switch id {
	case 0:
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be claimed", id)
	case 1:
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be claimed", id)
	case MaxVLANID:
		return fmt.Errorf("VLAN %d is reserved, cannot be claimed", id)
	}
	if id < 0 || id > MaxVLANID {
		return fmt.Errorf("VLAN %d is out of range [0, %d]", id, MaxVLANID)
	}
	return nil
}

func (r *vlanRange) Get(id int64) (labels.Set, error) {
	return r.m.Get(id)
}

// Claim claims the VLAN block [start, stop) with label set d. The block
// must not overlap reserved VLANs or an existing claim.
func (r *vlanRange) Claim(start, stop int64, d labels.Set) error {
	if err := validateID(start); err != nil {
		return err
	}
	if stop < start+1 || stop > MaxVLANID {
		return fmt.Errorf("invalid VLAN block [%d, %d)", start, stop)
	}
	seq, err := r.m.Ranges(rangemap.At(start), rangemap.At(stop))
	if err != nil {
		return err
	}
	for claimed := range seq {
		return fmt.Errorf("VLAN block [%d, %d) overlaps existing claim %s", start, stop, claimed)
	}
	return r.m.Set(d, rangemap.At(start), rangemap.At(stop))
}

func (r *vlanRange) ClaimID(id int64, d labels.Set) error {
	return r.Claim(id, id+1, d)
}

// Release releases the VLAN block [start, stop). The whole block must be
// claimed: releasing a partially claimed block fails without changes.
// Reserved VLANs can never be released.
func (r *vlanRange) Release(start, stop int64) error {
	if err := validateID(start); err != nil {
		return err
	}
	if stop < start+1 || stop > MaxVLANID {
		return fmt.Errorf("invalid VLAN block [%d, %d)", start, stop)
	}
	return r.m.Delete(rangemap.At(start), rangemap.At(stop))
}

// Count returns the number of claimed blocks, reserved ones included.
func (r *vlanRange) Count() int {
	return r.m.Len()
}

func (r *vlanRange) Has(id int64) bool {
	return r.m.Has(id)
}

func (r *vlanRange) Ranges() []rangemap.MappedRange[int64, labels.Set] {
	var out []rangemap.MappedRange[int64, labels.Set]
	seq, err := r.m.Ranges(rangemap.Unbounded[int64](), rangemap.Unbounded[int64]())
	if err != nil {
		return nil
	}
	for mr := range seq {
		out = append(out, mr)
	}
	return out
}

func (r *vlanRange) GetByLabel(selector labels.Selector) []rangemap.MappedRange[int64, labels.Set] {
	var out []rangemap.MappedRange[int64, labels.Set]
	for _, mr := range r.Ranges() {
		if selector.Matches(mr.Value) {
			out = append(out, mr)
		}
	}
	return out
}
