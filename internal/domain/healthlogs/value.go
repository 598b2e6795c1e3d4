package healthlogs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value es el valor de un registro; la variante concreta depende de la categoría.
type Value interface {
	Category() Category
}

// NumericValue lo implementan las variantes numéricas.
type NumericValue interface {
	Value
	Number() float64
}

type WeightValue struct{ Kg float64 }
type WaterValue struct{ ML float64 }
type ActivityValue struct{ Minutes float64 }
type StoolValue struct{ Status StoolStatus }

// TextValue es el detalle libre de HOSPITAL y SYMPTOM.
type TextValue struct {
	Kind Category
	Text string
}

func (WeightValue) Category() Category   { return CategoryWeight }
func (WaterValue) Category() Category    { return CategoryWater }
func (ActivityValue) Category() Category { return CategoryActivity }
func (StoolValue) Category() Category    { return CategoryStool }
func (v TextValue) Category() Category   { return v.Kind }

func (v WeightValue) Number() float64   { return v.Kg }
func (v WaterValue) Number() float64    { return v.ML }
func (v ActivityValue) Number() float64 { return v.Minutes }

// StoolStatus son los estados del registro de heces.
type StoolStatus string

const (
	StoolNormal   StoolStatus = "정상"
	StoolSoft     StoolStatus = "무름"
	StoolDiarrhea StoolStatus = "설사"
	StoolHard     StoolStatus = "딱딱함"
	StoolBloody   StoolStatus = "혈변"
	StoolAccident StoolStatus = "소변실수"
)

func StoolStatuses() []StoolStatus {
	return []StoolStatus{StoolNormal, StoolSoft, StoolDiarrhea, StoolHard, StoolBloody, StoolAccident}
}

func (s StoolStatus) Valid() bool {
	for _, v := range StoolStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// WaterPresets son los atajos de mililitros del formulario de agua.
var WaterPresets = []float64{50, 100, 150, 200}

// NewValue arma la variante correcta para la categoría a partir de un valor suelto
// (número o string).
func NewValue(c Category, v any) (Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: value: %v", ErrInvalidInput, err)
	}
	return DecodeValue(c, b)
}

// DecodeValue decodifica el valor guardado. Los numéricos aceptan número JSON o
// string numérico (columnas de texto).
func DecodeValue(c Category, raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch c {
	case CategoryWeight, CategoryWater, CategoryActivity:
		n, err := decodeNumber(raw)
		if err != nil {
			return nil, err
		}
		switch c {
		case CategoryWeight:
			return WeightValue{Kg: n}, nil
		case CategoryWater:
			return WaterValue{ML: n}, nil
		default:
			return ActivityValue{Minutes: n}, nil
		}
	case CategoryStool:
		s, err := decodeText(raw)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return StoolValue{Status: StoolStatus(s)}, nil
	case CategoryHospital, CategorySymptom:
		s, err := decodeText(raw)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return TextValue{Kind: c, Text: s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown log_type %q", ErrInvalidInput, c)
	}
}

// EncodeValue produce la forma de cable: número para las variantes numéricas,
// string para el resto, nada si no hay valor.
func EncodeValue(v Value) (json.RawMessage, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case NumericValue:
		return json.Marshal(x.Number())
	case StoolValue:
		return json.Marshal(string(x.Status))
	case TextValue:
		return json.Marshal(x.Text)
	default:
		return nil, fmt.Errorf("healthlogs: unsupported value %T", v)
	}
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%w: value must be a number", ErrInvalidInput)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: value must be a number, got %q", ErrInvalidInput, s)
	}
	return n, nil
}

func decodeText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: value must be a string", ErrInvalidInput)
}
