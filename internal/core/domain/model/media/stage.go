package media

import (
	"fmt"

	"haulage/internal/pkg/errs"
)

// Stage tags evidence with the workflow step it documents.
type Stage string

const (
	StageWeighIn       Stage = "weigh_in"
	StageUnload        Stage = "unload"
	StageWeighOut      Stage = "weigh_out"
	StageDeliveryProof Stage = "delivery_proof"
	StageException     Stage = "exception"
	StageOther         Stage = "other"
)

// Stages lists every valid tag in workflow order.
func Stages() []Stage {
	return []Stage{StageWeighIn, StageUnload, StageWeighOut, StageDeliveryProof, StageException, StageOther}
}

func (s Stage) Validate() error {
	for _, known := range Stages() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("media stage", fmt.Errorf("%q is not a known stage", string(s)))
}

// ParseStage defaults an empty tag to StageOther.
func ParseStage(raw string) (Stage, error) {
	if raw == "" {
		return StageOther, nil
	}
	s := Stage(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}
