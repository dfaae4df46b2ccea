// Package robot holds the enumerated mapping between the robot API call
// forms of the scripting language and graph node kinds. The table is the
// single source of truth for both translation directions: the translator
// resolves call forms through Lookup, the generators recover call forms
// through ByKind. Adding a device call means adding one Entry here.
package robot

import "github.com/minilab/bloc/graph"

type ArgKind int

const (
	// ArgValue binds the argument expression to a value slot.
	ArgValue ArgKind = iota
	// ArgField requires a literal argument and stores it as a node field.
	ArgField
	// ArgLiteral requires the argument to be the exact literal Want; it
	// discriminates between entries sharing a call form and is consumed.
	ArgLiteral
)

type Arg struct {
	Name string
	Kind ArgKind
	Want string
}

type Entry struct {
	Receiver  string
	Method    string
	Kind      graph.Kind
	Statement bool
	Args      []Arg
	Fields    map[string]string
}

func (e Entry) Arity() int {
	return len(e.Args)
}

var table = []Entry{
	{
		Receiver:  "bot",
		Method:    "moveToPose",
		Kind:      graph.KindMoveToPose,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotPose, Kind: ArgValue}},
	},
	{
		Receiver:  "bot",
		Method:    "setHeadJoints",
		Kind:      graph.KindSetHeadJoints,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotAngles, Kind: ArgValue}},
	},
	{
		Receiver:  "bot",
		Method:    "setAllJoints",
		Kind:      graph.KindSetAllJoints,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotAngles, Kind: ArgValue}},
	},
	{
		Receiver:  "bot",
		Method:    "setAntennas",
		Kind:      graph.KindSetAntennas,
		Statement: true,
		Args: []Arg{
			{Name: graph.SlotLeftDeg, Kind: ArgValue},
			{Name: graph.SlotRightDeg, Kind: ArgValue},
		},
	},
	{
		Receiver:  "bot",
		Method:    "setLeftAntenna",
		Kind:      graph.KindSetAntenna,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotAngle, Kind: ArgValue}},
		Fields:    map[string]string{graph.FieldSide: "left"},
	},
	{
		Receiver:  "bot",
		Method:    "setRightAntenna",
		Kind:      graph.KindSetAntenna,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotAngle, Kind: ArgValue}},
		Fields:    map[string]string{graph.FieldSide: "right"},
	},
	{
		Receiver:  "bot",
		Method:    "setTorque",
		Kind:      graph.KindTorqueOn,
		Statement: true,
		Args: []Arg{
			{Name: graph.FieldMotor, Kind: ArgField},
			{Kind: ArgLiteral, Want: "true"},
		},
	},
	{
		Receiver:  "bot",
		Method:    "setTorque",
		Kind:      graph.KindTorqueOff,
		Statement: true,
		Args: []Arg{
			{Name: graph.FieldMotor, Kind: ArgField},
			{Kind: ArgLiteral, Want: "false"},
		},
	},
	{
		Receiver:  "bot",
		Method:    "rebootMotor",
		Kind:      graph.KindRebootMotor,
		Statement: true,
		Args:      []Arg{{Name: graph.FieldMotor, Kind: ArgField}},
	},
	{
		Method:    "sleep",
		Kind:      graph.KindWait,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotSeconds, Kind: ArgValue}},
	},
	{
		Receiver:  "console",
		Method:    "log",
		Kind:      graph.KindPrint,
		Statement: true,
		Args:      []Arg{{Name: graph.SlotText, Kind: ArgValue}},
	},
	{
		Receiver: "bot",
		Method:   "getHeadPose",
		Kind:     graph.KindGetHeadPose,
	},
	{
		Receiver: "bot",
		Method:   "getHeadJoints",
		Kind:     graph.KindGetHeadJoints,
	},
	{
		Receiver: "bot",
		Method:   "getAllJoints",
		Kind:     graph.KindGetAllJoints,
	},
	{
		Receiver: "bot",
		Method:   "getLeftAntenna",
		Kind:     graph.KindGetAntenna,
		Fields:   map[string]string{graph.FieldSide: "left"},
	},
	{
		Receiver: "bot",
		Method:   "getRightAntenna",
		Kind:     graph.KindGetAntenna,
		Fields:   map[string]string{graph.FieldSide: "right"},
	},
	{
		Receiver: "bot",
		Method:   "getMotorTemperature",
		Kind:     graph.KindMotorTemperature,
		Args:     []Arg{{Name: graph.FieldMotor, Kind: ArgField}},
	},
	{
		Receiver: "bot",
		Method:   "getMotorLoad",
		Kind:     graph.KindMotorLoad,
		Args:     []Arg{{Name: graph.FieldMotor, Kind: ArgField}},
	},
	{
		Receiver: "bot",
		Method:   "pingMotor",
		Kind:     graph.KindPingMotor,
		Args:     []Arg{{Name: graph.FieldMotor, Kind: ArgField}},
	},
	{
		Receiver: "bot",
		Method:   "isConnected",
		Kind:     graph.KindIsConnected,
	},
}

// Lookup returns the candidate entries for a call form. More than one entry
// comes back when a literal argument discriminates (setTorque).
func Lookup(receiver, method string, arity int) []Entry {
	var out []Entry
	for _, e := range table {
		if e.Receiver == receiver && e.Method == method && e.Arity() == arity {
			out = append(out, e)
		}
	}
	return out
}

// ByKind recovers the call form for a node, matching any fields the entry
// fixes (antenna side).
func ByKind(n *graph.Node) (Entry, bool) {
	for _, e := range table {
		if e.Kind != n.Kind {
			continue
		}
		match := true
		for name, want := range e.Fields {
			if n.Field(name) != want {
				match = false
				break
			}
		}
		if match {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries exposes the whole table, mostly for tests and tooling.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}
