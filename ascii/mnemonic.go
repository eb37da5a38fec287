package ascii

// Mnemonic is the short ASCII token identifying a command or reply operation.
type Mnemonic string

// Command mnemonics of the MCS/SDC ASCII interface.
//
// Axis-level commands address a single channel; controller-level commands
// address the controller itself and carry no channel index.
const (
	// Movement control (axis-level).
	CmdCalibrate         Mnemonic = "CS"  // calibrate sensor
	CmdFindReferenceMark Mnemonic = "FRM" // find reference mark: direction, hold time, auto-zero
	CmdMovePositionAbs   Mnemonic = "MPA" // position [nm], hold time [ms]
	CmdMovePositionRel   Mnemonic = "MPR" // position delta [nm], hold time [ms]
	CmdMoveAngleAbs      Mnemonic = "MAA" // angle [udeg], revolution, hold time [ms]
	CmdMoveAngleRel      Mnemonic = "MAR" // angle delta [udeg], revolution delta, hold time [ms]
	CmdMoveStep          Mnemonic = "MST" // open-loop burst: steps, amplitude, frequency
	CmdStop              Mnemonic = "S"

	// Feedback (axis-level).
	CmdGetPosition     Mnemonic = "GP"
	CmdGetStatus       Mnemonic = "GS"
	CmdGetAngle        Mnemonic = "GA"
	CmdGetSensorType   Mnemonic = "GST"
	CmdGetPhysPosKnown Mnemonic = "GPPK"

	// Configuration (axis-level).
	CmdSetPosition         Mnemonic = "SP"
	CmdSetClosedLoopVel    Mnemonic = "SCLS"
	CmdGetClosedLoopVel    Mnemonic = "GCLS"
	CmdSetClosedLoopAcc    Mnemonic = "SCLA"
	CmdGetClosedLoopAcc    Mnemonic = "GCLA"
	CmdSetPositionLimit    Mnemonic = "SPL"
	CmdGetPositionLimit    Mnemonic = "GPL"
	CmdSetAngleLimit       Mnemonic = "SAL"
	CmdGetAngleLimit       Mnemonic = "GAL"
	CmdSetSafeDirection    Mnemonic = "SSD"
	CmdGetSafeDirection    Mnemonic = "GSD"
	CmdSetReportOnComplete Mnemonic = "SRC"

	// Initialization and miscellaneous (controller-level).
	CmdGetInterfaceVersion Mnemonic = "GIV"
	CmdGetSystemID         Mnemonic = "GSI"
	CmdGetNumChannels      Mnemonic = "GNC"
	CmdSetCommMode         Mnemonic = "SCM"
	CmdGetCommMode         Mnemonic = "GCM"
	CmdSetSensorMode       Mnemonic = "SSE"
	CmdGetSensorMode       Mnemonic = "GSE"
	CmdKeepAlive           Mnemonic = "K"
	CmdReset               Mnemonic = "R"
	CmdSetBaudrate         Mnemonic = "BR"
)

// Reply mnemonics.
//
// "E" is the reserved error/acknowledge slot; a code of 0 acknowledges a
// well-formed request. "ES" is not an error: it is the unsolicited
// event/status report emitted when report-on-complete is enabled.
const (
	RepError        Mnemonic = "E"
	RepStatusReport Mnemonic = "ES"

	RepStatus        Mnemonic = "S"
	RepPosition      Mnemonic = "P"
	RepAngle         Mnemonic = "A"
	RepSensorType    Mnemonic = "ST"
	RepPhysPosKnown  Mnemonic = "PPK"
	RepClosedLoopVel Mnemonic = "CLS"
	RepClosedLoopAcc Mnemonic = "CLA"
	RepPositionLimit Mnemonic = "PL"
	RepAngleLimit    Mnemonic = "AL"
	RepSafeDirection Mnemonic = "SD"
	RepVersion       Mnemonic = "IV"
	RepSystemID      Mnemonic = "ID"
	RepNumChannels   Mnemonic = "N"
	RepCommMode      Mnemonic = "CM"
	RepSensorMode    Mnemonic = "SE"
	RepBaudrate      Mnemonic = "BR"
)

// cmdSpec describes the fixed grammar of one command mnemonic.
type cmdSpec struct {
	axis    bool     // true if the command addresses a channel
	nparams int      // number of parameters after the address
	reply   Mnemonic // reply mnemonic that satisfies this command
}

var cmdSpecs = map[Mnemonic]cmdSpec{
	CmdCalibrate:         {axis: true, nparams: 0, reply: RepError},
	CmdFindReferenceMark: {axis: true, nparams: 3, reply: RepError},
	CmdMovePositionAbs:   {axis: true, nparams: 2, reply: RepError},
	CmdMovePositionRel:   {axis: true, nparams: 2, reply: RepError},
	CmdMoveAngleAbs:      {axis: true, nparams: 3, reply: RepError},
	CmdMoveAngleRel:      {axis: true, nparams: 3, reply: RepError},
	CmdMoveStep:          {axis: true, nparams: 3, reply: RepError},
	CmdStop:              {axis: true, nparams: 0, reply: RepError},

	CmdGetPosition:     {axis: true, nparams: 0, reply: RepPosition},
	CmdGetStatus:       {axis: true, nparams: 0, reply: RepStatus},
	CmdGetAngle:        {axis: true, nparams: 0, reply: RepAngle},
	CmdGetSensorType:   {axis: true, nparams: 0, reply: RepSensorType},
	CmdGetPhysPosKnown: {axis: true, nparams: 0, reply: RepPhysPosKnown},

	CmdSetPosition:         {axis: true, nparams: 1, reply: RepError},
	CmdSetClosedLoopVel:    {axis: true, nparams: 1, reply: RepError},
	CmdGetClosedLoopVel:    {axis: true, nparams: 0, reply: RepClosedLoopVel},
	CmdSetClosedLoopAcc:    {axis: true, nparams: 1, reply: RepError},
	CmdGetClosedLoopAcc:    {axis: true, nparams: 0, reply: RepClosedLoopAcc},
	CmdSetPositionLimit:    {axis: true, nparams: 2, reply: RepError},
	CmdGetPositionLimit:    {axis: true, nparams: 0, reply: RepPositionLimit},
	CmdSetAngleLimit:       {axis: true, nparams: 4, reply: RepError},
	CmdGetAngleLimit:       {axis: true, nparams: 0, reply: RepAngleLimit},
	CmdSetSafeDirection:    {axis: true, nparams: 1, reply: RepError},
	CmdGetSafeDirection:    {axis: true, nparams: 0, reply: RepSafeDirection},
	CmdSetReportOnComplete: {axis: true, nparams: 1, reply: RepError},

	CmdGetInterfaceVersion: {nparams: 0, reply: RepVersion},
	CmdGetSystemID:         {nparams: 0, reply: RepSystemID},
	CmdGetNumChannels:      {nparams: 0, reply: RepNumChannels},
	CmdSetCommMode:         {nparams: 1, reply: RepError},
	CmdGetCommMode:         {nparams: 0, reply: RepCommMode},
	CmdSetSensorMode:       {nparams: 1, reply: RepError},
	CmdGetSensorMode:       {nparams: 0, reply: RepSensorMode},
	CmdKeepAlive:           {nparams: 1, reply: RepError},
	CmdReset:               {nparams: 0, reply: RepError},
	CmdSetBaudrate:         {nparams: 1, reply: RepBaudrate},
}

// replySpec describes the fixed grammar of one reply mnemonic.
type replySpec struct {
	kind  ReplyKind
	addr  bool // true if the first value is a channel address
	nvals int  // number of payload values after the address
}

var replySpecs = map[Mnemonic]replySpec{
	RepError:        {kind: ReplyError, addr: true, nvals: 1},        // code
	RepStatusReport: {kind: ReplyStatusReport, addr: true, nvals: 1}, // status

	RepStatus:        {kind: ReplyValue, addr: true, nvals: 1}, // status
	RepPosition:      {kind: ReplyValue, addr: true, nvals: 1}, // position [nm]
	RepAngle:         {kind: ReplyValue, addr: true, nvals: 2}, // angle [udeg], revolution
	RepSensorType:    {kind: ReplyValue, addr: true, nvals: 1}, // sensor code
	RepPhysPosKnown:  {kind: ReplyValue, addr: true, nvals: 1}, // 0 or 1
	RepClosedLoopVel: {kind: ReplyValue, addr: true, nvals: 1},
	RepClosedLoopAcc: {kind: ReplyValue, addr: true, nvals: 1},
	RepPositionLimit: {kind: ReplyValue, addr: true, nvals: 2}, // min, max [nm]
	RepAngleLimit:    {kind: ReplyValue, addr: true, nvals: 4}, // minAngle, minRev, maxAngle, maxRev
	RepSafeDirection: {kind: ReplyValue, addr: true, nvals: 1},

	RepVersion:     {kind: ReplyValue, nvals: 3}, // major, minor, update
	RepSystemID:    {kind: ReplyValue, nvals: 1},
	RepNumChannels: {kind: ReplyValue, nvals: 1},
	RepCommMode:    {kind: ReplyValue, nvals: 1},
	RepSensorMode:  {kind: ReplyValue, nvals: 1},
	RepBaudrate:    {kind: ReplyValue, nvals: 1},
}
