package scope

// Scope selects which indexes a search runs against.
type Scope string

// Search scope constants.
const (
	// All searches vehicles and parts and merges the results.
	All      Scope = "all"
	Vehicles Scope = "vehicles"
	Parts    Scope = "parts"
)

// IsValid checks if the scope is one of the supported values.
func (s Scope) IsValid() bool {
	return s == All || s == Vehicles || s == Parts
}

// IncludesVehicles reports whether the vehicle index should be searched.
func (s Scope) IncludesVehicles() bool { return s == All || s == Vehicles }

// IncludesParts reports whether the product index should be searched.
func (s Scope) IncludesParts() bool { return s == All || s == Parts }
