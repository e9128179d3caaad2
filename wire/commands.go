package wire

// Command ids. Requests occupy 0x00xx, their responses 0x10xx, and the
// catch-all error response sits at 0x9999.
const (
	CmdLoginReq        uint32 = 0x0001
	CmdLoginRsp        uint32 = 0x1001
	CmdRoomJoinReq     uint32 = 0x0002
	CmdRoomJoinRsp     uint32 = 0x1002
	CmdSnapshotReq     uint32 = 0x0003
	CmdSnapshotRsp     uint32 = 0x1003
	CmdBetPlacementReq uint32 = 0x0004
	CmdBetPlacementRsp uint32 = 0x1004
	CmdBetFinishedReq  uint32 = 0x0005
	CmdBetFinishedRsp  uint32 = 0x1005
	CmdReckonResultReq uint32 = 0x0006
	CmdReckonResultRsp uint32 = 0x1006
	CmdErrorRsp        uint32 = 0x9999
)

// Error codes carried by ERROR_RSP.error_code.
const (
	ErrCodeInvalidFormat       uint32 = 1000
	ErrCodeAuthRequired        uint32 = 1001
	ErrCodeInsufficientBalance uint32 = 1002
	ErrCodeInvalidRoom         uint32 = 1003
	ErrCodeInvalidBet          uint32 = 1004
	ErrCodeServerError         uint32 = 1005
	ErrCodeRateLimit           uint32 = 1006
)

// Round status values as reported in SNAPSHOT_RSP.round_status.
const (
	RoundStatusNone            uint8 = 0
	RoundStatusBetting         uint8 = 1
	RoundStatusAwaitingResults uint8 = 2
)
