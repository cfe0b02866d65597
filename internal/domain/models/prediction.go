package models

import "time"

// PredictionRequest is the strict feature record accepted by the simple
// prediction endpoint. Flags whose zero value is in-domain are pointers so a
// missing field is distinguishable from an explicit 0.
type PredictionRequest struct {
	EsFeriado                 *int   `json:"Es_Feriado" validate:"required,gte=0,lte=1"`
	EsVacaciones              *int   `json:"Es_Vacaciones" validate:"required,gte=0,lte=1"`
	Mes                       int    `json:"Mes" validate:"required,gte=1,lte=12"`
	DiaSemanaEncoded          *int   `json:"Dia_Semana_Encoded" validate:"required,gte=0,lte=6"`
	Trimestre                 int    `json:"Trimestre" validate:"required,gte=1,lte=4"`
	TemporadaTuristicaEncoded *int   `json:"Temporada_Turistica_Encoded" validate:"required,gte=0,lte=3"`
	Provincia                 string `json:"provincia" validate:"required,provincia"`
}

// Record converts the validated request into a feature record.
func (r *PredictionRequest) Record() FeatureRecord {
	return FeatureRecord{
		EsFeriado:                 *r.EsFeriado,
		EsVacaciones:              *r.EsVacaciones,
		Mes:                       r.Mes,
		DiaSemanaEncoded:          *r.DiaSemanaEncoded,
		Trimestre:                 r.Trimestre,
		TemporadaTuristicaEncoded: *r.TemporadaTuristicaEncoded,
		Provincia:                 r.Provincia,
	}
}

// FullPredictionRequest is the lenient variant used by the detailed endpoint:
// missing features fall back to defaults instead of being rejected.
type FullPredictionRequest struct {
	EsFeriado                 int    `json:"Es_Feriado" validate:"gte=0,lte=1"`
	EsVacaciones              int    `json:"Es_Vacaciones" validate:"gte=0,lte=1"`
	Mes                       int    `json:"Mes" default:"1" validate:"gte=1,lte=12"`
	DiaSemanaEncoded          int    `json:"Dia_Semana_Encoded" validate:"gte=0,lte=6"`
	Trimestre                 int    `json:"Trimestre" default:"1" validate:"gte=1,lte=4"`
	TemporadaTuristicaEncoded int    `json:"Temporada_Turistica_Encoded" validate:"gte=0,lte=3"`
	Provincia                 string `json:"provincia" default:"PICHINCHA" validate:"required,provincia"`
}

// Record converts the request into a feature record.
func (r *FullPredictionRequest) Record() FeatureRecord {
	return FeatureRecord{
		EsFeriado:                 r.EsFeriado,
		EsVacaciones:              r.EsVacaciones,
		Mes:                       r.Mes,
		DiaSemanaEncoded:          r.DiaSemanaEncoded,
		Trimestre:                 r.Trimestre,
		TemporadaTuristicaEncoded: r.TemporadaTuristicaEncoded,
		Provincia:                 r.Provincia,
	}
}

// FeatureRecord is one validated observation passed to the prediction
// collaborator. Field meaning and encoding match the trained model.
type FeatureRecord struct {
	EsFeriado                 int    `json:"Es_Feriado"`
	EsVacaciones              int    `json:"Es_Vacaciones"`
	Mes                       int    `json:"Mes"`
	DiaSemanaEncoded          int    `json:"Dia_Semana_Encoded"`
	Trimestre                 int    `json:"Trimestre"`
	TemporadaTuristicaEncoded int    `json:"Temporada_Turistica_Encoded"`
	Provincia                 string `json:"provincia"`
}

// FeatureNames lists the numeric model features in training order.
func FeatureNames() []string {
	return []string{
		"Es_Feriado",
		"Es_Vacaciones",
		"Mes",
		"Dia_Semana_Encoded",
		"Trimestre",
		"Temporada_Turistica_Encoded",
	}
}

// PredictionResponse is the flat payload returned by the simple endpoint.
type PredictionResponse struct {
	Afluencia float64 `json:"afluencia"`
	Categoria string  `json:"categoria"`
	Success   bool    `json:"success"`
}

// FullPredictionResponse is the detailed payload of the full endpoint.
type FullPredictionResponse struct {
	Prediccion PredictionDetail   `json:"prediccion"`
	Detalles   PredictionDetalles `json:"detalles"`
	Metadata   PredictionMetadata `json:"metadata"`
}

type PredictionDetail struct {
	Afluencia      float64 `json:"afluencia"`
	PrediccionBase float64 `json:"prediccion_base"`
	Categoria      string  `json:"categoria"`
	Emoji          string  `json:"emoji"`
	Recomendacion  string  `json:"recomendacion"`
}

type PredictionDetalles struct {
	Provincia         string             `json:"provincia"`
	DiaSemana         int                `json:"dia_semana"`
	Mes               int                `json:"mes"`
	EsVacaciones      bool               `json:"es_vacaciones"`
	FactoresAplicados map[string]float64 `json:"factores_aplicados"`
	FactorTotal       float64            `json:"factor_total"`
}

type PredictionMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Modelo    string    `json:"modelo"`
	Status    string    `json:"status"`
}

// HealthResponse reports service liveness and model readiness.
type HealthResponse struct {
	Status           string    `json:"status"`
	ModeloCargado    bool      `json:"modelo_cargado"`
	FeaturesCargadas bool      `json:"features_cargadas"`
	PatronesCargados bool      `json:"patrones_cargados"`
	Timestamp        time.Time `json:"timestamp"`
}

// FeatureSpec documents one required model feature.
type FeatureSpec struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// FeaturesResponse lists the features a prediction request must carry.
type FeaturesResponse struct {
	Features []FeatureSpec `json:"features"`
}

// APIInfo is the index payload served at the root path.
type APIInfo struct {
	Mensaje   string            `json:"mensaje"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Status    string            `json:"status"`
}
