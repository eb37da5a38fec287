package ascii

import "fmt"

// SensorType is the positioner sensor code reported by "GST" replies.
// The sensor code determines whether a channel drives a linear or a rotary
// positioner.
type SensorType int64

// Sensor code names as documented for the MCS sensor-type table.
var sensorName = map[SensorType]string{
	1: "S", 2: "SR", 3: "ML", 4: "MR", 5: "SP", 6: "SC", 7: "M25",
	8: "SR20", 9: "M", 10: "GC", 11: "GD", 12: "GE", 13: "RA", 14: "GF",
	15: "RB", 16: "G605S", 17: "G775S", 18: "SC500", 19: "G955S",
	20: "SR77", 21: "SD", 22: "R20ME", 23: "SR2", 24: "SCD", 25: "SRC",
	26: "SR36M", 27: "SR36ME", 28: "SR50M", 29: "SR50ME", 30: "G1045S",
	31: "G1395S", 32: "MD", 33: "G935M", 34: "SHL20", 35: "SCT",
}

var linearSensors = map[SensorType]struct{}{
	1: {}, 5: {}, 6: {}, 9: {}, 18: {}, 21: {}, 24: {}, 32: {}, 35: {},
}

var rotarySensors = map[SensorType]struct{}{
	2: {}, 8: {}, 14: {}, 20: {}, 22: {}, 23: {}, 25: {}, 26: {}, 27: {},
	28: {}, 29: {},
}

// IsLinear reports whether the sensor code belongs to a linear positioner.
func (s SensorType) IsLinear() bool {
	_, ok := linearSensors[s]
	return ok
}

// IsRotary reports whether the sensor code belongs to a rotary positioner.
func (s SensorType) IsRotary() bool {
	_, ok := rotarySensors[s]
	return ok
}

func (s SensorType) String() string {
	if name, ok := sensorName[s]; ok {
		return name
	}

	return fmt.Sprintf("sensor(%d)", int64(s))
}
