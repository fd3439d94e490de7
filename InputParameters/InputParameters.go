package InputParameters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/golbm/methods"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
	"github.com/notargets/golbm/types"
)

// Expression holds a symbolic expression written in YAML either as a
// number or as a string like "omega" or "2/(6*nu + 1)".
type Expression string

func (e *Expression) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Expression(s)
		return nil
	}
	*e = Expression(strings.TrimSpace(string(data)))
	return nil
}

func (e Expression) Expr() (symbolic.Expr, error) { return symbolic.Parse(string(e)) }

// Parameters obtained from the YAML input file
type MethodParameters struct {
	Title            string       `json:"Title"`
	Stencil          string       `json:"Stencil"`
	Ordering         string       `json:"Ordering"`
	Method           string       `json:"Method"`
	RelaxationRates  []Expression `json:"RelaxationRates"`
	MagicNumber      Expression   `json:"MagicNumber"`
	Compressible     bool         `json:"Compressible"`
	EquilibriumOrder int          `json:"EquilibriumOrder"`
	Maxwellian       string       `json:"Maxwellian"`
	ForceModel       string       `json:"ForceModel"`
	Force            []Expression `json:"Force"`
}

var ExampleFile = `
########################################
Title: "Lid driven cavity"
Stencil: D2Q9
Ordering: walberla
Method: trt-magic # srt, trt, trt-magic, mrt-raw, mrt
RelaxationRates: [omega]
MagicNumber: 3/16
Compressible: false
EquilibriumOrder: 2
Maxwellian: discrete # or continuous
ForceModel: guo # none, simple, luo, guo
Force: [F_0, F_1]
########################################
`

func (mp *MethodParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

func (mp *MethodParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%s]\t\t\t= Stencil\n", mp.Stencil)
	if len(mp.Ordering) != 0 {
		fmt.Printf("[%s]\t\t= Ordering\n", mp.Ordering)
	}
	fmt.Printf("[%s]\t\t\t= Method\n", types.NewMethodType(mp.Method))
	fmt.Printf("%v\t\t= Relaxation Rates\n", mp.RelaxationRates)
	if len(mp.MagicNumber) != 0 {
		fmt.Printf("%s\t\t\t= Magic Number\n", mp.MagicNumber)
	}
	fmt.Printf("%v\t\t\t= Compressible\n", mp.Compressible)
	fmt.Printf("[%d]\t\t\t\t= Equilibrium Order\n", mp.EquilibriumOrder)
	if len(mp.ForceModel) != 0 {
		fmt.Printf("[%s]\t\t\t= Force Model, Force = %v\n", mp.ForceModel, mp.Force)
	}
}

func parseExpressions(list []Expression) (exprs []symbolic.Expr, err error) {
	exprs = make([]symbolic.Expr, len(list))
	for i, e := range list {
		if exprs[i], err = e.Expr(); err != nil {
			return nil, err
		}
	}
	return
}

// Build creates the method described by the parameters.
func (mp *MethodParameters) Build() (m *methods.MomentBasedMethod, err error) {
	var (
		s     stencils.Stencil
		rates []symbolic.Expr
		opts  = methods.DefaultOptions()
	)
	if s, err = stencils.Get(mp.Stencil, mp.Ordering); err != nil {
		return
	}
	if rates, err = parseExpressions(mp.RelaxationRates); err != nil {
		return
	}
	opts.Compressible = mp.Compressible
	if mp.EquilibriumOrder != 0 {
		opts.EquilibriumOrder = mp.EquilibriumOrder
	}
	mx, ok := types.NewMaxwellianType(mp.Maxwellian)
	if !ok {
		return nil, fmt.Errorf("%w: unknown Maxwellian %q", methods.ErrConfiguration, mp.Maxwellian)
	}
	opts.Continuous = mx == types.MX_Continuous
	if opts.ForceModel, err = mp.forceModel(s.Dim()); err != nil {
		return
	}
	needRates := func(n int) error {
		if len(rates) < n {
			return fmt.Errorf("%w: method %s needs %d relaxation rate(s), have %d",
				methods.ErrConfiguration, mp.Method, n, len(rates))
		}
		return nil
	}
	switch mt := types.NewMethodType(mp.Method); mt {
	case types.M_SRT:
		if err = needRates(1); err == nil {
			m, err = methods.CreateSRT(s, rates[0], opts)
		}
	case types.M_TRT:
		if err = needRates(2); err == nil {
			m, err = methods.CreateTRT(s, rates[0], rates[1], opts)
		}
	case types.M_TRTMagic:
		var magic symbolic.Expr
		if len(mp.MagicNumber) != 0 {
			if magic, err = mp.MagicNumber.Expr(); err != nil {
				return
			}
		}
		if err = needRates(1); err == nil {
			m, err = methods.CreateTRTWithMagicNumber(s, rates[0], magic, opts)
		}
	case types.M_MRTRaw:
		m, err = methods.CreateMRTRaw(s, rates, opts)
	case types.M_MRT:
		var getter methods.RateGetter
		if len(rates) != 0 {
			getter = methods.NewDefaultRateGetter(rates[0])
		}
		m, err = methods.CreateOrthogonalMRT(s, getter, opts)
	default:
		err = fmt.Errorf("%w: unknown method %q", methods.ErrConfiguration, mp.Method)
	}
	return
}

func (mp *MethodParameters) forceModel(dim int) (fm methods.ForceModel, err error) {
	fmType, ok := types.NewForceModelType(mp.ForceModel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown force model %q", methods.ErrConfiguration, mp.ForceModel)
	}
	if fmType == types.FM_None {
		return
	}
	force := methods.ForceSymbols(dim)
	if len(mp.Force) != 0 {
		if force, err = parseExpressions(mp.Force); err != nil {
			return
		}
	}
	return methods.NewForceModel(fmType.String(), force)
}
