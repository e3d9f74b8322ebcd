// pkg/aviation/intent.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "log/slog"

// IntentDirection says which way along the radio an Intent travels.
// The pilot script only reacts to ControllerToPilot transmissions
// addressed to its own flight; PilotToController transmissions are the
// readbacks and requests the script itself originates.
type IntentDirection int

const (
	ControllerToPilot IntentDirection = iota
	PilotToController
)

// IntentCode identifies the kind of radio transmission an Intent
// carries, one per case the original's handleCommTransmission switches
// on.
type IntentCode int

const (
	IntentUnspecified IntentCode = iota
	IntentDeliveryIfrClearanceReply
	IntentDeliveryIfrClearanceReadbackCorrect
	IntentGroundPushAndStartReply
	IntentGroundDepartureTaxiReply
	IntentGroundRunwayCrossClearance
	IntentGroundSwitchToTower
	IntentTowerLineUp
	IntentTowerClearedForTakeoff
	IntentTowerClearedForLanding
	IntentGroundArrivalTaxiReply
	IntentPilotReadback
	IntentPilotRequest
)

func (c IntentCode) String() string {
	switch c {
	case IntentUnspecified:
		return "Unspecified"
	case IntentDeliveryIfrClearanceReply:
		return "DeliveryIfrClearanceReply"
	case IntentDeliveryIfrClearanceReadbackCorrect:
		return "DeliveryIfrClearanceReadbackCorrect"
	case IntentGroundPushAndStartReply:
		return "GroundPushAndStartReply"
	case IntentGroundDepartureTaxiReply:
		return "GroundDepartureTaxiReply"
	case IntentGroundRunwayCrossClearance:
		return "GroundRunwayCrossClearance"
	case IntentGroundSwitchToTower:
		return "GroundSwitchToTower"
	case IntentTowerLineUp:
		return "TowerLineUp"
	case IntentTowerClearedForTakeoff:
		return "TowerClearedForTakeoff"
	case IntentTowerClearedForLanding:
		return "TowerClearedForLanding"
	case IntentGroundArrivalTaxiReply:
		return "GroundArrivalTaxiReply"
	case IntentPilotReadback:
		return "PilotReadback"
	case IntentPilotRequest:
		return "PilotRequest"
	default:
		return "Unknown"
	}
}

// clearanceKindForIntent maps an incoming controller intent code to the
// ClearanceKind it grants, mirroring the original's handleCommTransmission
// switch one case at a time. IntentGroundSwitchToTower and
// IntentDeliveryIfrClearanceReadbackCorrect carry no clearance of their
// own (a frequency handoff and a readback acknowledgement, respectively)
// and are excluded.
var clearanceKindForIntent = map[IntentCode]ClearanceKind{
	IntentDeliveryIfrClearanceReply:   ClearanceIfr,
	IntentGroundPushAndStartReply:     ClearancePushAndStart,
	IntentGroundDepartureTaxiReply:    ClearanceDepartureTaxi,
	IntentGroundRunwayCrossClearance:  ClearanceRunwayCross,
	IntentTowerLineUp:                 ClearanceLineUp,
	IntentTowerClearedForTakeoff:      ClearanceTakeoff,
	IntentTowerClearedForLanding:      ClearanceLanding,
	IntentGroundArrivalTaxiReply:      ClearanceArrivalTaxi,
}

// Intent is a radio transmission envelope: a code, a direction, the
// flight it's addressed to, and an optional clearance/frequency payload.
// Grounded on the Intent base class and per-intent subclasses in the
// original engine, collapsed into a single struct since Go has no
// equivalent of the dynamic_pointer_cast dispatch those subclasses exist
// to support.
type Intent struct {
	Code          IntentCode
	Direction     IntentDirection
	SubjectFlight string // callsign
	Clearance     *Clearance
	GroundKhz     Frequency
	TowerKhz      Frequency
	DepartureKhz  Frequency
}

func (i Intent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("code", i.Code.String()),
		slog.String("flight", i.SubjectFlight))
}

// ClearanceFromIntent extracts the clearance an incoming controller
// intent grants, if any. Returns nil, false for intents that carry no
// clearance.
func ClearanceFromIntent(i *Intent) (*Clearance, bool) {
	kind, ok := clearanceKindForIntent[i.Code]
	if !ok || i.Clearance == nil {
		return nil, false
	}
	i.Clearance.Kind = kind
	return i.Clearance, true
}
