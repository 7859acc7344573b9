package gateway

// Adjustment types the gateway treats as payment surcharge fees.
const (
	FeeTypeFixed              = "fee_fixed"
	FeeTypePercentage         = "fee_percentage"
	FeeTypeFixedAndPercentage = "fee_fixed_and_percentage"
)

// SurchargeRegistry answers whether an adjustment type is a payment
// surcharge that must appear as its own payload line.
type SurchargeRegistry interface {
	Contains(adjustmentType string) bool
}

// SurchargeFeeTypes is a set-backed registry. Membership is a map lookup:
// a positional search would misreport a match at position zero.
type SurchargeFeeTypes struct {
	types map[string]struct{}
}

func NewSurchargeFeeTypes(types ...string) *SurchargeFeeTypes {
	s := &SurchargeFeeTypes{types: make(map[string]struct{}, len(types))}
	for _, t := range types {
		s.types[t] = struct{}{}
	}
	return s
}

// DefaultSurchargeFeeTypes covers the fee modes the gateway can configure.
func DefaultSurchargeFeeTypes() *SurchargeFeeTypes {
	return NewSurchargeFeeTypes(FeeTypeFixed, FeeTypePercentage, FeeTypeFixedAndPercentage)
}

func (s *SurchargeFeeTypes) Contains(adjustmentType string) bool {
	_, ok := s.types[adjustmentType]
	return ok
}
