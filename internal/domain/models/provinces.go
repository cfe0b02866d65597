package models

import (
	"sort"

	xhttp "Afluencia/pkg/http"

	"github.com/go-playground/validator/v10"
)

// provinces holds Ecuador's 24 provinces, uppercase as the model was trained.
var provinces = map[string]struct{}{
	"AZUAY":                          {},
	"BOLIVAR":                        {},
	"CAÑAR":                          {},
	"CARCHI":                         {},
	"CHIMBORAZO":                     {},
	"COTOPAXI":                       {},
	"EL ORO":                         {},
	"ESMERALDAS":                     {},
	"GALAPAGOS":                      {},
	"GUAYAS":                         {},
	"IMBABURA":                       {},
	"LOJA":                           {},
	"LOS RIOS":                       {},
	"MANABI":                         {},
	"MORONA SANTIAGO":                {},
	"NAPO":                           {},
	"ORELLANA":                       {},
	"PASTAZA":                        {},
	"PICHINCHA":                      {},
	"SANTA ELENA":                    {},
	"SANTO DOMINGO DE LOS TSACHILAS": {},
	"SUCUMBIOS":                      {},
	"TUNGURAHUA":                     {},
	"ZAMORA CHINCHIPE":               {},
}

func init() {
	// "provincia" tag used by the prediction request models.
	_ = xhttp.RegisterValidation("provincia", func(fl validator.FieldLevel) bool {
		return IsValidProvince(fl.Field().String())
	})
}

// IsValidProvince reports whether name is a known province. Matching is
// exact: clients send uppercase names per the feature encoding.
func IsValidProvince(name string) bool {
	_, ok := provinces[name]
	return ok
}

// ProvinceList returns all province names sorted alphabetically.
func ProvinceList() []string {
	out := make([]string, 0, len(provinces))
	for p := range provinces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
