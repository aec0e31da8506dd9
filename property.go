package rpcad

// PhysicalProperty identifies a mass property computed from the design body.
// Values are reported in SI units: kg, m^2, m^3, kg/m^3 and m.
type PhysicalProperty string

const (
	Mass         PhysicalProperty = "mass"
	Area         PhysicalProperty = "area"
	Volume       PhysicalProperty = "volume"
	Density      PhysicalProperty = "density"
	BoundingBox  PhysicalProperty = "bounding_box"
	CenterOfMass PhysicalProperty = "center_of_mass"
)

// Accuracy selects the mesh quality the host uses when computing physical
// properties. Higher accuracy is slower.
type Accuracy string

const (
	Low      Accuracy = "low"
	Medium   Accuracy = "medium"
	High     Accuracy = "high"
	VeryHigh Accuracy = "very_high"
)

type Box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// PropertyValue holds one physical property result. Exactly one field is set:
// Scalar for mass/area/volume/density, Vector for the center of mass, Box for
// the bounding box.
type PropertyValue struct {
	Scalar *float64  `json:"scalar,omitempty"`
	Vector []float64 `json:"vector,omitempty"`
	Box    *Box      `json:"box,omitempty"`
}

func Scalar(value float64) PropertyValue {
	return PropertyValue{Scalar: &value}
}

func Vector(values ...float64) PropertyValue {
	return PropertyValue{Vector: values}
}
