package dataset_test

import (
	"fmt"

	"github.com/cwbudde/algo-xspec/dataset"
	"github.com/cwbudde/algo-xspec/layout"
	"github.com/cwbudde/algo-xspec/spectrum"
)

func ExampleNew() {
	src := &spectrum.Spectrum{
		Channels:        []int{1, 2, 3, 4},
		Quality:         []int{0, 0, 0, 0},
		Grouping:        []int{1, 1, 1, 1},
		Data:            []float64{120, 90, 45, 12},
		Units:           spectrum.Counts,
		Statistic:       spectrum.StatPoisson,
		Exposure:        5000,
		BackgroundScale: 1,
		AreaScale:       1,
	}

	d, err := dataset.New("obs-01", src)
	if err != nil {
		panic(err)
	}

	l, err := layout.CommonAll(d)
	if err != nil {
		panic(err)
	}
	domain, _ := d.MakeDomain(l)

	fmt.Println("layout:", l)
	fmt.Println("domain:", domain)
	// Output:
	// layout: one-to-one
	// domain: [1 2 3 4]
}
