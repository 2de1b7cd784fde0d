package prescription

// All contains the built-in prescriptions, by name.
var All = map[string]*Prescription{
	"reference":    reference,
	"relay":        relay,
	"stopped-down": stoppedDown,
	"field-stop":   fieldStop,
}

// reference images a 4cm object at 2f through a lens of focal length 6cm,
// with irises in front of and behind the lens.
var reference = &Prescription{
	Name:        "reference",
	Description: "f=6cm lens at 2f between two irises",
	Steps: []Step{
		Object{Height: 4},
		Transfer{Distance: 10},
		Iris{Diameter: 6},
		Transfer{Distance: 2},
		Lens{FocalLength: 6, Diameter: 6},
		Transfer{Distance: 2},
		Iris{Diameter: 4},
		Transfer{Distance: 10},
	},
}

// relay uses two f=5cm lenses at 4f spacing.  There is an intermediate,
// inverted image half way between the lenses.
var relay = &Prescription{
	Name:        "relay",
	Description: "two f=5cm lenses forming an upright image",
	Steps: []Step{
		Object{Height: 1},
		Transfer{Distance: 10},
		Lens{FocalLength: 5, Diameter: 8},
		Transfer{Distance: 20},
		Lens{FocalLength: 5, Diameter: 8},
		Transfer{Distance: 10},
	},
	Fan: Fan{From: -8, To: 8, Step: 2},
}

// stoppedDown has a small iris in front of the lens, which is the aperture
// stop of the system.
var stoppedDown = &Prescription{
	Name:        "stopped-down",
	Description: "f=5cm lens behind a 2cm iris",
	Steps: []Step{
		Object{Height: 3},
		Transfer{Distance: 8},
		Iris{Diameter: 2},
		Transfer{Distance: 2},
		Refraction{Power: 0.2, Diameter: 10},
		Transfer{Distance: 10},
	},
	Fan: Fan{From: -20, To: 20, Step: 1},
}

// fieldStop is the reference system with an additional iris near the image
// plane, which cuts off the rays from the tip of the object.
var fieldStop = &Prescription{
	Name:        "field-stop",
	Description: "reference system with an iris close to the image",
	Steps: []Step{
		Object{Height: 4},
		Transfer{Distance: 12},
		Lens{FocalLength: 6, Diameter: 6},
		Transfer{Distance: 10},
		Iris{Diameter: 5},
		Transfer{Distance: 2},
	},
}
