package domain

// Feature names used by the smelting model and the historian replay.
const (
	FeatureTotalChargeRate  = "Total charge rate, t/h"
	FeatureBlastVolume      = "Overall blast volume, m3/h"
	FeatureOxygenContent    = "Oxygen content in the blast (degree of oxygen enrichment in the blowing), %"
	FeatureExhaustGasTemp   = "Temperature of exhaust gases in the off-gas duct, °C"
	FeatureSmeltingZoneTemp = "Temperature of feed in the smelting zone, °C"
	FeatureFeeder2Speed     = "feeder 2, speed"
)

// DefaultRequiredFeatures is the feature list used when no fitted model metadata is available.
var DefaultRequiredFeatures = []string{
	FeatureTotalChargeRate,
	FeatureBlastVolume,
	FeatureOxygenContent,
	FeatureExhaustGasTemp,
	FeatureSmeltingZoneTemp,
	FeatureFeeder2Speed,
}

// FeatureSet is an ordered mapping from feature name to a finite numeric value.
type FeatureSet struct {
	names  []string
	values map[string]float64
}

// Set stores a value, keeping the first-insertion order of names.
func (fs *FeatureSet) Set(name string, value float64) {
	if fs.values == nil {
		fs.values = make(map[string]float64)
	}
	if _, ok := fs.values[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.values[name] = value
}

func (fs FeatureSet) Get(name string) (float64, bool) {
	v, ok := fs.values[name]
	return v, ok
}

func (fs FeatureSet) Len() int {
	return len(fs.names)
}

// Names returns a copy of the feature names in insertion order.
func (fs FeatureSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

// Ordered returns the values for names in the given order, plus any names that are absent.
func (fs FeatureSet) Ordered(names []string) ([]float64, []string) {
	values := make([]float64, 0, len(names))
	var missing []string
	for _, n := range names {
		v, ok := fs.values[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		values = append(values, v)
	}
	return values, missing
}

// Map returns the set as a plain map, e.g. for persistence.
func (fs FeatureSet) Map() map[string]any {
	out := make(map[string]any, len(fs.values))
	for k, v := range fs.values {
		out[k] = v
	}
	return out
}
