package types

import "strings"

type MethodType uint8

const (
	M_None MethodType = iota
	M_SRT
	M_TRT
	M_TRTMagic
	M_MRTRaw
	M_MRT
)

var MethodNameMap = map[string]MethodType{
	"srt":        M_SRT,
	"bgk":        M_SRT,
	"trt":        M_TRT,
	"trt-magic":  M_TRTMagic,
	"magic":      M_TRTMagic,
	"mrt-raw":    M_MRTRaw,
	"raw":        M_MRTRaw,
	"mrt":        M_MRT,
	"orthogonal": M_MRT,
}

var methodPrintNames = []string{"None", "SRT", "TRT", "TRT (magic number)", "MRT (raw moments)", "MRT (orthogonal)"}

func (mt MethodType) String() string {
	if int(mt) < len(methodPrintNames) {
		return methodPrintNames[mt]
	}
	return "Unknown"
}

func NewMethodType(label string) MethodType {
	return MethodNameMap[strings.ToLower(strings.TrimSpace(label))]
}

type ForceModelType uint8

const (
	FM_None ForceModelType = iota
	FM_Simple
	FM_Luo
	FM_Guo
)

var ForceModelNameMap = map[string]ForceModelType{
	"":       FM_None,
	"none":   FM_None,
	"simple": FM_Simple,
	"luo":    FM_Luo,
	"guo":    FM_Guo,
}

var forceModelPrintNames = []string{"none", "simple", "luo", "guo"}

func (fm ForceModelType) String() string {
	if int(fm) < len(forceModelPrintNames) {
		return forceModelPrintNames[fm]
	}
	return "unknown"
}

// NewForceModelType returns ok false for unknown labels.
func NewForceModelType(label string) (fm ForceModelType, ok bool) {
	fm, ok = ForceModelNameMap[strings.ToLower(strings.TrimSpace(label))]
	return
}

type MaxwellianType uint8

const (
	MX_Discrete MaxwellianType = iota
	MX_Continuous
)

var MaxwellianNameMap = map[string]MaxwellianType{
	"":           MX_Discrete,
	"discrete":   MX_Discrete,
	"continuous": MX_Continuous,
}

func (mx MaxwellianType) String() string {
	if mx == MX_Continuous {
		return "continuous"
	}
	return "discrete"
}

func NewMaxwellianType(label string) (mx MaxwellianType, ok bool) {
	mx, ok = MaxwellianNameMap[strings.ToLower(strings.TrimSpace(label))]
	return
}
