package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// VacationFactor is the uplift applied when the date falls in a vacation
// period.
const VacationFactor = 1.15

// monthFactors is the seasonal correction table. High season: school
// vacations (jun-ago), fiestas (dic) and enero.
var monthFactors = map[int]float64{
	1:  1.1,
	2:  1.05,
	3:  0.95,
	4:  0.9,
	5:  0.9,
	6:  1.2,
	7:  1.25,
	8:  1.3,
	9:  0.9,
	10: 0.95,
	11: 1.0,
	12: 1.15,
}

// ProvincePattern holds per-province calibration values.
type ProvincePattern struct {
	FactorBase    float64 `json:"factor_base"`
	AfluenciaBase float64 `json:"afluencia_base"`
}

// WeekdayPattern holds the per-weekday correction factor. Keys follow the
// model encoding: 0 = lunes .. 6 = domingo.
type WeekdayPattern struct {
	Factor float64 `json:"factor"`
}

// Patterns is the correction-pattern set applied on top of the raw model
// output. It loads from a JSON export of the training pipeline, with
// compiled-in defaults when no file is configured.
type Patterns struct {
	Provincia map[string]ProvincePattern `json:"PATRONES_PROVINCIA"`
	DiaSemana map[string]WeekdayPattern  `json:"PATRONES_DIA_SEMANA"`

	fromFile bool
}

// CorrectionResult is the outcome of applying all correction factors.
type CorrectionResult struct {
	Corrected   float64
	Factors     map[string]float64
	FactorTotal float64
}

// LoadPatterns reads a pattern file, or returns the built-in defaults when
// path is empty.
func LoadPatterns(path string) (*Patterns, error) {
	if path == "" {
		return DefaultPatterns(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}

	var p Patterns
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	if len(p.Provincia) == 0 {
		return nil, fmt.Errorf("patterns: PATRONES_PROVINCIA is empty")
	}

	p.fromFile = true
	return &p, nil
}

// FromFile reports whether the patterns came from an external export.
func (p *Patterns) FromFile() bool { return p.fromFile }

// BaseAfluencia returns the calibration base score for a province, falling
// back to a neutral midpoint for provinces absent from the export.
func (p *Patterns) BaseAfluencia(provincia string) float64 {
	if pat, ok := p.Provincia[provincia]; ok && pat.AfluenciaBase > 0 {
		return pat.AfluenciaBase
	}
	return 16.0
}

// Apply multiplies the base prediction by the province, weekday, vacation
// and seasonal factors. Unknown keys contribute a neutral 1.0, mirroring the
// training pipeline.
func (p *Patterns) Apply(base float64, provincia string, diaSemana, esVacaciones, mes int) CorrectionResult {
	factors := map[string]float64{
		"provincia":  1.0,
		"dia_semana": 1.0,
		"vacaciones": 1.0,
		"estacional": 1.0,
	}
	total := 1.0

	if pat, ok := p.Provincia[provincia]; ok && pat.FactorBase > 0 {
		factors["provincia"] = pat.FactorBase
		total *= pat.FactorBase
	}

	if pat, ok := p.DiaSemana[fmt.Sprintf("%d", diaSemana)]; ok && pat.Factor > 0 {
		factors["dia_semana"] = pat.Factor
		total *= pat.Factor
	}

	if esVacaciones == 1 {
		factors["vacaciones"] = VacationFactor
		total *= VacationFactor
	}

	if f, ok := monthFactors[mes]; ok {
		factors["estacional"] = f
		total *= f
	}

	return CorrectionResult{
		Corrected:   base * total,
		Factors:     factors,
		FactorTotal: total,
	}
}

// DefaultPatterns returns the calibration shipped with the service.
func DefaultPatterns() *Patterns {
	return &Patterns{
		Provincia: map[string]ProvincePattern{
			"AZUAY":                          {FactorBase: 1.1, AfluenciaBase: 15},
			"BOLIVAR":                        {FactorBase: 0.85, AfluenciaBase: 10},
			"CAÑAR":                          {FactorBase: 0.9, AfluenciaBase: 11},
			"CARCHI":                         {FactorBase: 0.85, AfluenciaBase: 10},
			"CHIMBORAZO":                     {FactorBase: 0.95, AfluenciaBase: 12},
			"COTOPAXI":                       {FactorBase: 0.95, AfluenciaBase: 12},
			"EL ORO":                         {FactorBase: 1.0, AfluenciaBase: 13},
			"ESMERALDAS":                     {FactorBase: 1.1, AfluenciaBase: 15},
			"GALAPAGOS":                      {FactorBase: 1.3, AfluenciaBase: 20},
			"GUAYAS":                         {FactorBase: 1.2, AfluenciaBase: 17},
			"IMBABURA":                       {FactorBase: 1.05, AfluenciaBase: 14},
			"LOJA":                           {FactorBase: 0.95, AfluenciaBase: 12},
			"LOS RIOS":                       {FactorBase: 0.85, AfluenciaBase: 10},
			"MANABI":                         {FactorBase: 1.15, AfluenciaBase: 16},
			"MORONA SANTIAGO":                {FactorBase: 0.8, AfluenciaBase: 9},
			"NAPO":                           {FactorBase: 0.9, AfluenciaBase: 11},
			"ORELLANA":                       {FactorBase: 0.8, AfluenciaBase: 9},
			"PASTAZA":                        {FactorBase: 0.85, AfluenciaBase: 10},
			"PICHINCHA":                      {FactorBase: 1.15, AfluenciaBase: 16},
			"SANTA ELENA":                    {FactorBase: 1.1, AfluenciaBase: 15},
			"SANTO DOMINGO DE LOS TSACHILAS": {FactorBase: 0.9, AfluenciaBase: 11},
			"SUCUMBIOS":                      {FactorBase: 0.8, AfluenciaBase: 9},
			"TUNGURAHUA":                     {FactorBase: 1.05, AfluenciaBase: 14},
			"ZAMORA CHINCHIPE":               {FactorBase: 0.8, AfluenciaBase: 9},
		},
		DiaSemana: map[string]WeekdayPattern{
			"0": {Factor: 0.9},
			"1": {Factor: 0.85},
			"2": {Factor: 0.85},
			"3": {Factor: 0.9},
			"4": {Factor: 1.0},
			"5": {Factor: 1.25},
			"6": {Factor: 1.1},
		},
	}
}
