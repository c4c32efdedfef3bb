package iprange

import (
	"fmt"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangemap/pkg/rangemap"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// IPRangeMap tracks contiguous address blocks inside one IP range and
// the route claimed on each block. Blocks are inclusive on both ends,
// like netipx.IPRange.
type IPRangeMap interface {
	Get(addr string) (table.Route, error)
	Claim(from, to string, route table.Route) error
	Release(from, to string) error

	Count() int
	Has(addr string) bool

	Ranges() []rangemap.MappedRange[netip.Addr, table.Route]
	GetByLabel(selector labels.Selector) table.Routes
}

func New(from, to netip.Addr) (IPRangeMap, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	return &ipRangeMap{
		m:       rangemap.NewFunc[netip.Addr, table.Route](netip.Addr.Compare, routeEqual),
		ipRange: ipRange,
	}, nil
}

func routeEqual(a, b table.Route) bool {
	return a.Prefix() == b.Prefix() && labels.Equals(a.Labels(), b.Labels())
}

// stopBound converts the inclusive top of a block to the exclusive stop
// of the underlying half-open range. Next is invalid at the top of the
// address space; the block then extends unbounded.
func stopBound(to netip.Addr) rangemap.Bound[netip.Addr] {
	next := to.Next()
	if !next.IsValid() {
		return rangemap.Unbounded[netip.Addr]()
	}
	return rangemap.At(next)
}

type ipRangeMap struct {
	m       *rangemap.RangeMap[netip.Addr, table.Route]
	ipRange netipx.IPRange
}

func (r *ipRangeMap) validateIP(addr string) (netip.Addr, error) {
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid ip address %s: %v", addr, err)
	}
	if !r.ipRange.Contains(a) {
		return netip.Addr{}, fmt.Errorf("ip address %s is not in range %s", addr, r.ipRange)
	}
	return a, nil
}

func (r *ipRangeMap) Get(addr string) (table.Route, error) {
	a, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	return r.m.Get(a)
}

// Claim claims the inclusive address block from-to with route.
func (r *ipRangeMap) Claim(from, to string, route table.Route) error {
	fromIP, err := r.validateIP(from)
	if err != nil {
		return err
	}
	toIP, err := r.validateIP(to)
	if err != nil {
		return err
	}
	if fromIP.Compare(toIP) > 0 {
		return fmt.Errorf("invalid block %s-%s: from is after to", from, to)
	}
	start, stop := rangemap.At(fromIP), stopBound(toIP)
	seq, err := r.m.Ranges(start, stop)
	if err != nil {
		return err
	}
	for claimed := range seq {
		return fmt.Errorf("block %s-%s overlaps existing claim %s", from, to, claimed)
	}
	return r.m.Set(route, start, stop)
}

// Release releases the inclusive address block from-to. The whole block
// must be claimed: releasing a partially claimed block fails without
// changes.
func (r *ipRangeMap) Release(from, to string) error {
	fromIP, err := r.validateIP(from)
	if err != nil {
		return err
	}
	toIP, err := r.validateIP(to)
	if err != nil {
		return err
	}
	return r.m.Delete(rangemap.At(fromIP), stopBound(toIP))
}

// Count returns the number of claimed blocks.
func (r *ipRangeMap) Count() int {
	return r.m.Len()
}

func (r *ipRangeMap) Has(addr string) bool {
	a, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.m.Has(a)
}

func (r *ipRangeMap) Ranges() []rangemap.MappedRange[netip.Addr, table.Route] {
	var out []rangemap.MappedRange[netip.Addr, table.Route]
	seq, err := r.m.Ranges(rangemap.Unbounded[netip.Addr](), rangemap.Unbounded[netip.Addr]())
	if err != nil {
		return nil
	}
	for mr := range seq {
		out = append(out, mr)
	}
	return out
}

func (r *ipRangeMap) GetByLabel(selector labels.Selector) table.Routes {
	var routes table.Routes
	for _, mr := range r.Ranges() {
		if selector.Matches(mr.Value.Labels()) {
			routes = append(routes, mr.Value)
		}
	}
	return routes
}
