package main

import (
	"fmt"

	"github.com/henderiw/rangemap/pkg/rangemap"
	"github.com/henderiw/rangemap/pkg/vlanrange"
	"k8s.io/apimachinery/pkg/labels"
)

func main() {
	m := rangemap.NewWithDefault[int, string]("free")
	if err := m.Set("alice", rangemap.At(10), rangemap.At(20)); err != nil {
		panic(err)
	}
	if err := m.Set("bob", rangemap.At(20), rangemap.At(30)); err != nil {
		panic(err)
	}
	fmt.Println(m)

	seq, err := m.Ranges(rangemap.At(15), rangemap.At(25))
	if err != nil {
		panic(err)
	}
	for r := range seq {
		fmt.Println("range", r)
	}

	if err := m.Delete(rangemap.At(10), rangemap.At(30)); err != nil {
		panic(err)
	}
	fmt.Println(m)

	v, err := vlanrange.New()
	if err != nil {
		panic(err)
	}
	if err := v.Claim(100, 200, map[string]string{"tenant": "a"}); err != nil {
		panic(err)
	}
	for _, r := range v.GetByLabel(labels.SelectorFromSet(labels.Set{"tenant": "a"})) {
		fmt.Println("vlan block", r)
	}
}
