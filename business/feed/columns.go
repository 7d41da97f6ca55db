package feed

import "smelterAdvisor/domain"

// columnTranslations maps historian export headers to the English names used downstream.
var columnTranslations = map[string]string{
	"номер измерения":                          "Measurement ID",
	"дата":                                     "Date",
	"давление КВС, точка1":                     "blast furnace pressure, point 1",
	"давление КВС, точка2":                     "blast furnace pressure, point 2",
	"давление природный газ":                   "natural gas pressure",
	"конвейер 31, производительность":          "conveyor 31, productivity",
	"конвейер 31, скорость":                    "conveyor 31, speed",
	"конвейер 32, производительность":          "conveyor 32, productivity",
	"конвейер 32, скорость":                    "conveyor 32, speed",
	"питатель1, уровень":                       "feeder 1, level",
	"питатель1, скорость":                      "feeder 1, speed",
	"питатель1, производительность":            "feeder 1, productivity",
	"питатель2, уровень":                       "feeder 2, level",
	"питатель2, скорость":                      "feeder 2, speed",
	"питатель2, производительность":            "feeder 2, productivity",
	"питатель3, уровень":                       "feeder 3, level",
	"питатель3, скорость":                      "feeder 3, speed",
	"питатель3, производительность":            "feeder 3, productivity",
	"питатель4, уровень":                       "feeder 4, level",
	"питатель4, скорость":                      "feeder 4, speed",
	"питатель4, производительность":            "feeder 4, productivity",
	"питатель5, уровень":                       "feeder 5, level",
	"питатель5, скорость":                      "feeder 5, speed",
	"питатель5, производительность":            "feeder 5, productivity",
	"питатель6, уровень":                       "feeder 6, level",
	"питатель6, скорость":                      "feeder 6, speed",
	"питатель6, производительность":            "feeder 6, productivity",
	"питатель7, скорость":                      "feeder 7, speed",
	"питатель8, скорость":                      "feeder 8, speed",
	"питатель7, уровень":                       "feeder 7, level",
	"питатель8, уровень":                       "feeder 8, level",
	"разрежение в аптейке":                     "vacuum in the bunker",
	"расход КВС":                               "blast furnace flow",
	"расход природного газа":                   "natural gas flow",
	"содержание кислорода в КВС":               "oxygen content in the blast furnace",
	"температура КВС":                          "blast furnace temperature",
	"температура отходящих газов в аптейке":    "temperature of outgoing gases in the bunker",
	"температура пода, шлаковый сифон":         "temperature of the feed, slag siphon",
	"температура пода, штейновый сифон":        "temperature of the feed, matte siphon",
	"температура пода, зона плавления, точка1": "temperature of the feed, melting zone, point 1",
	"температура пода, зона плавления, точка2": "temperature of the feed, melting zone, point 2",
	"температура природного газа":              "temperature of natural gas",
}

const (
	columnDate          = "Date"
	columnConveyor31    = "conveyor 31, productivity"
	columnConveyor32    = "conveyor 32, productivity"
	columnMeltingPoint1 = "temperature of the feed, melting zone, point 1"
	columnMeltingPoint2 = "temperature of the feed, melting zone, point 2"
	columnOffGasTemp    = "temperature of outgoing gases in the bunker"
	columnBlastFlow     = "blast furnace flow"
	columnBlastOxygen   = "oxygen content in the blast furnace"
	columnFeeder2Speed  = "feeder 2, speed"
)

func translateColumn(name string) string {
	if t, ok := columnTranslations[name]; ok {
		return t
	}
	return name
}

// deriveFeatures adds the model features computed from raw historian columns.
// Unparseable inputs count as 0.
func deriveFeatures(row Row) {
	c31, ok31 := row.number(columnConveyor31)
	c32, ok32 := row.number(columnConveyor32)
	total := 0.0
	if ok31 && ok32 {
		total = c31 + c32
	}
	row[domain.FeatureTotalChargeRate] = total

	p1, _ := row.number(columnMeltingPoint1)
	p2, _ := row.number(columnMeltingPoint2)
	row[domain.FeatureSmeltingZoneTemp] = (p1 + p2) / 2

	row[domain.FeatureExhaustGasTemp] = row.numberOrZero(columnOffGasTemp)
	row[domain.FeatureBlastVolume] = row.numberOrZero(columnBlastFlow)
	row[domain.FeatureOxygenContent] = row.numberOrZero(columnBlastOxygen)
	row[domain.FeatureFeeder2Speed] = row.numberOrZero(columnFeeder2Speed)
}
