package dispatch

import (
	"fmt"

	"haulage/internal/core/domain/model/media"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Action names a staged workflow command.
type Action int

const (
	ActionUnknown Action = iota
	ActionStartJourney
	ActionWeighIn
	ActionUnload
	ActionWeighOut
	ActionCompleteJob
)

type actionRule struct {
	name     string
	from     Status
	to       Status
	evidence media.Stage
}

var actionRules = map[Action]actionRule{
	ActionStartJourney: {name: "start_journey", from: Assigned, to: InTransit},
	ActionWeighIn:      {name: "weigh_in", from: InTransit, to: WeighIn, evidence: media.StageWeighIn},
	ActionUnload:       {name: "unload", from: WeighIn, to: Unload, evidence: media.StageUnload},
	ActionWeighOut:     {name: "weigh_out", from: Unload, to: WeighOut, evidence: media.StageWeighOut},
	ActionCompleteJob:  {name: "complete_job", from: WeighOut, to: Completed, evidence: media.StageDeliveryProof},
}

func (a Action) String() string {
	if r, ok := actionRules[a]; ok {
		return r.name
	}
	return "unknown"
}

func (a Action) Validate() error {
	if _, ok := actionRules[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a staged action", a))
	}
	return nil
}

// Requires is the only status the action may be applied in.
func (a Action) Requires() Status {
	return actionRules[a].from
}

// Target is the status the action moves a dispatch into.
func (a Action) Target() Status {
	return actionRules[a].to
}

// EvidenceStage is the tag given to images uploaded with the action. It is
// empty for actions that take no images.
func (a Action) EvidenceStage() media.Stage {
	return actionRules[a].evidence
}

// TakesEvidence reports whether images may accompany the action.
func (a Action) TakesEvidence() bool {
	return a.EvidenceStage() != ""
}

func ParseAction(raw string) (Action, error) {
	for a, r := range actionRules {
		if r.name == raw {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a staged action", raw))
}

// Transition is one staged command with its stage data. Weight is read by
// weigh_in (gross) and weigh_out (tare) and ignored otherwise.
type Transition struct {
	Action Action
	Weight *decimal.Decimal
	Note   string
}
