package probemap

// Stats is a point-in-time snapshot of a table's occupancy.
type Stats struct {
	Size           int
	Capacity       int
	Tombstones     int
	LoadFactor     float64
	TombstoneRatio float64
}
