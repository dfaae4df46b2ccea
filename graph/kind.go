package graph

import "fmt"

// Kind enumerates every node type the translators can produce. The set is
// closed: generators switch over it exhaustively and treat any other value
// as a hard error.
type Kind int

const (
	KindInvalid Kind = iota

	// statement kinds
	KindIf
	KindWhile
	KindCountLoop
	KindSetVariable
	KindListSet
	KindWait
	KindPrint
	KindMoveToPose
	KindSetHeadJoints
	KindSetAllJoints
	KindSetAntennas
	KindSetAntenna
	KindTorqueOn
	KindTorqueOff
	KindRebootMotor

	// value kinds
	KindNumber
	KindText
	KindBoolean
	KindVariable
	KindNegate
	KindNot
	KindLogic
	KindCompare
	KindArith
	KindConcat
	KindTrig
	KindMathFunc
	KindNow
	KindPose
	KindList
	KindListGet
	KindListLength
	KindGetHeadPose
	KindGetHeadJoints
	KindGetAllJoints
	KindGetAntenna
	KindMotorTemperature
	KindMotorLoad
	KindPingMotor
	KindIsConnected
)

var kindNames = map[Kind]string{
	KindIf:               "if",
	KindWhile:            "while",
	KindCountLoop:        "count_loop",
	KindSetVariable:      "set_variable",
	KindListSet:          "list_set",
	KindWait:             "wait",
	KindPrint:            "print",
	KindMoveToPose:       "move_to_pose",
	KindSetHeadJoints:    "set_head_joints",
	KindSetAllJoints:     "set_all_joints",
	KindSetAntennas:      "set_antennas",
	KindSetAntenna:       "set_antenna",
	KindTorqueOn:         "torque_on",
	KindTorqueOff:        "torque_off",
	KindRebootMotor:      "reboot_motor",
	KindNumber:           "number",
	KindText:             "text",
	KindBoolean:          "boolean",
	KindVariable:         "variable",
	KindNegate:           "negate",
	KindNot:              "not",
	KindLogic:            "logic",
	KindCompare:          "compare",
	KindArith:            "arith",
	KindConcat:           "concat",
	KindTrig:             "trig",
	KindMathFunc:         "math_func",
	KindNow:              "now",
	KindPose:             "pose",
	KindList:             "list",
	KindListGet:          "list_get",
	KindListLength:       "list_length",
	KindGetHeadPose:      "get_head_pose",
	KindGetHeadJoints:    "get_head_joints",
	KindGetAllJoints:     "get_all_joints",
	KindGetAntenna:       "get_antenna",
	KindMotorTemperature: "motor_temperature",
	KindMotorLoad:        "motor_load",
	KindPingMotor:        "ping_motor",
	KindIsConnected:      "is_connected",
}

var kindValues = make(map[string]Kind)

func init() {
	for k, n := range kindNames {
		kindValues[n] = k
	}
}

func (k Kind) String() string {
	n, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return n
}

// Statement reports whether nodes of this kind chain as executable steps
// rather than plug into value slots.
func (k Kind) Statement() bool {
	return k > KindInvalid && k < KindNumber
}

func KindByName(name string) (Kind, bool) {
	k, ok := kindValues[name]
	return k, ok
}

// Common slot and field names shared by translators and generators.
const (
	SlotLeft     = "A"
	SlotRight    = "B"
	SlotOperand  = "X"
	SlotCond     = "COND"
	SlotIf       = "IF"
	SlotValue    = "VALUE"
	SlotList     = "LIST"
	SlotIndex    = "INDEX"
	SlotFrom     = "FROM"
	SlotTo       = "TO"
	SlotBy       = "BY"
	SlotSeconds  = "SECONDS"
	SlotText     = "TEXT"
	SlotPose     = "POSE"
	SlotAngles   = "ANGLES"
	SlotAngle    = "ANGLE"
	SlotLeftDeg  = "LEFT"
	SlotRightDeg = "RIGHT"

	ChainDo   = "DO"
	ChainElse = "ELSE"

	FieldOp    = "OP"
	FieldFn    = "FN"
	FieldSide  = "SIDE"
	FieldMotor = "MOTOR"
	FieldElse  = "ELSE"
)
