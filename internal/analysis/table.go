package analysis

import "github.com/san-kum/cnconv/internal/dynamo"

// Row is one line of the error table. The finest resolution has no rate.
type Row struct {
	N        int     `json:"n"`
	H        float64 `json:"h"`
	MaxError float64 `json:"e_h"`
	Rate     float64 `json:"-"`
	HasRate  bool    `json:"-"`
}

type Table struct {
	Params     dynamo.Params `json:"params"`
	Integrator string        `json:"integrator"`
	Order      int           `json:"order"`
	Rows       []Row         `json:"rows"`
}

// ObservedOrder returns the rate between the two finest resolutions.
func (t *Table) ObservedOrder() (float64, bool) {
	if len(t.Rows) < 2 {
		return 0, false
	}
	return t.Rows[len(t.Rows)-2].Rate, true
}

func (t *Table) Errors() []float64 {
	errs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		errs[i] = r.MaxError
	}
	return errs
}

func (t *Table) StepSizes() []float64 {
	hs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		hs[i] = r.H
	}
	return hs
}
