package models

// HeatpumpModels is the model catalog offered by the scan form. "Anders" means other.
var HeatpumpModels = []string{
	"F2120", "F2040", "F2050", "F470", "F370", "F750",
	"S2125", "S1155", "S1255", "S1256", "S735",
	"F1155", "F1255", "F1245", "F1345",
	"AMS 10-12", "AMS 20-24", "SPLIT",
	"Anders",
}

// ErrorCodes is the catalog of known fault codes.
var ErrorCodes = []string{
	"634 - Geen warm tapwater",
	"417 - Te hoge retourtemperatuur",
	"205 - Compressor probleem",
	"110 - Stroomuitval",
	"317 - Lage druk",
	"318 - Hoge druk",
	"414 - Flow probleem",
}

func inCatalog(catalog []string, v string) bool {
	for _, c := range catalog {
		if c == v {
			return true
		}
	}
	return false
}

// IsKnownModel reports whether m is in HeatpumpModels.
func IsKnownModel(m string) bool { return inCatalog(HeatpumpModels, m) }

// IsKnownErrorCode reports whether c is in ErrorCodes.
func IsKnownErrorCode(c string) bool { return inCatalog(ErrorCodes, c) }
