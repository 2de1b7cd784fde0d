package paraxial_test

import (
	"fmt"

	"seehuhn.de/go/paraxial"
)

func Example() {
	s := paraxial.New()
	s.SetObjectHeight(4)
	s.AppendTransfer(10)
	s.AppendIris(10, 6)
	s.AppendTransfer(2)
	s.AppendLens(12, 6, 6)
	s.AppendTransfer(2)
	s.AppendIris(14, 4)
	s.AppendTransfer(10)

	marginal := s.MarginalRays()
	fmt.Printf("marginal ray: %.2f°\n", marginal.Rays[0].Angle)
	if stop, ok := marginal.Stop.(paraxial.Iris); ok {
		fmt.Printf("stop: iris at z=%g\n", stop.Z)
	}

	im, err := s.FindImage(paraxial.Fan(4, -10, 10, 1))
	if err != nil {
		panic(err)
	}
	h, _ := im.Height()
	m, _ := im.Magnification(4)
	fmt.Printf("image position: %.2f cm\n", im.Base.Z)
	fmt.Printf("image height: %.2f cm\n", h)
	fmt.Printf("magnification: %.2f\n", m)

	// Output:
	// marginal ray: 11.30°
	// stop: iris at z=14
	// image position: 24.00 cm
	// image height: -4.00 cm
	// magnification: 1.00
}
