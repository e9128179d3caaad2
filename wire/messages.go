package wire

// One struct per message body: each request has a Decode function and
// each response an Encode method, so the dispatcher never touches a
// Reader/Writer directly for a known command.

// LoginReq is CMD_LOGIN_REQ's body.
type LoginReq struct {
	Username string
	Password string
}

func DecodeLoginReq(body []byte) (LoginReq, error) {
	r := NewReader(body)
	username, err := r.ReadString()
	if err != nil {
		return LoginReq{}, err
	}
	password, err := r.ReadString()
	if err != nil {
		return LoginReq{}, err
	}
	if !r.Done() {
		return LoginReq{}, ErrInvalidFormat
	}
	return LoginReq{Username: username, Password: password}, nil
}

// LoginRsp is CMD_LOGIN_RSP's body.
type LoginRsp struct {
	Success      bool
	Message      string
	SessionToken string
	UserID       uint32
	Balance      int64
}

func (m LoginRsp) Encode() []byte {
	w := NewWriter()
	w.WriteBool(m.Success)
	w.WriteString(m.Message)
	w.WriteString(m.SessionToken)
	w.WriteU32(m.UserID)
	w.WriteI64(m.Balance)
	return w.Bytes()
}

// RoomJoinReq is CMD_ROOM_JOIN_REQ's body.
type RoomJoinReq struct {
	RoomID uint32
}

func DecodeRoomJoinReq(body []byte) (RoomJoinReq, error) {
	r := NewReader(body)
	roomID, err := r.ReadU32()
	if err != nil {
		return RoomJoinReq{}, err
	}
	if !r.Done() {
		return RoomJoinReq{}, ErrInvalidFormat
	}
	return RoomJoinReq{RoomID: roomID}, nil
}

// RoomJoinRsp is CMD_ROOM_JOIN_RSP's body.
type RoomJoinRsp struct {
	Success     bool
	Message     string
	RoomID      uint32
	PlayerCount uint32
	JackpotPool int64
}

func (m RoomJoinRsp) Encode() []byte {
	w := NewWriter()
	w.WriteBool(m.Success)
	w.WriteString(m.Message)
	w.WriteU32(m.RoomID)
	w.WriteU32(m.PlayerCount)
	w.WriteI64(m.JackpotPool)
	return w.Bytes()
}

// SnapshotReq is CMD_SNAPSHOT_REQ's (empty) body. Nothing to decode,
// but a named decoder keeps the dispatch table uniform.
type SnapshotReq struct{}

func DecodeSnapshotReq(body []byte) (SnapshotReq, error) {
	if len(body) != 0 {
		return SnapshotReq{}, ErrInvalidFormat
	}
	return SnapshotReq{}, nil
}

// BetSummary is the active-bet element SNAPSHOT_RSP lists.
type BetSummary struct {
	DiceFace uint32
	Amount   int64
	BetID    string
	RoundID  string
}

func (b BetSummary) encode(w *Writer) {
	w.WriteU32(b.DiceFace)
	w.WriteI64(b.Amount)
	w.WriteString(b.BetID)
	w.WriteString(b.RoundID)
}

// SnapshotRsp is CMD_SNAPSHOT_RSP's body.
type SnapshotRsp struct {
	UserBalance int64
	ActiveBets  []BetSummary
	CurrentRoom uint32
	JackpotPool int64
	RoundStatus uint8
}

func (m SnapshotRsp) Encode() []byte {
	w := NewWriter()
	w.WriteI64(m.UserBalance)
	w.WriteU32(uint32(len(m.ActiveBets)))
	for _, b := range m.ActiveBets {
		b.encode(w)
	}
	w.WriteU32(m.CurrentRoom)
	w.WriteI64(m.JackpotPool)
	w.WriteU8(m.RoundStatus)
	return w.Bytes()
}

// BetPlacementReq is CMD_BET_PLACEMENT_REQ's body. RoundID is optional
// on the wire; an empty string means "use or create the user's active
// round".
type BetPlacementReq struct {
	DiceFace uint32
	Amount   int64
	RoundID  string
}

func DecodeBetPlacementReq(body []byte) (BetPlacementReq, error) {
	r := NewReader(body)
	diceFace, err := r.ReadU32()
	if err != nil {
		return BetPlacementReq{}, err
	}
	amount, err := r.ReadI64()
	if err != nil {
		return BetPlacementReq{}, err
	}
	roundID, err := r.ReadString()
	if err != nil {
		return BetPlacementReq{}, err
	}
	if !r.Done() {
		return BetPlacementReq{}, ErrInvalidFormat
	}
	return BetPlacementReq{DiceFace: diceFace, Amount: amount, RoundID: roundID}, nil
}

// BetPlacementRsp is CMD_BET_PLACEMENT_RSP's body.
type BetPlacementRsp struct {
	Success          bool
	Message          string
	BetID            string
	RoundID          string
	RemainingBalance int64
}

func (m BetPlacementRsp) Encode() []byte {
	w := NewWriter()
	w.WriteBool(m.Success)
	w.WriteString(m.Message)
	w.WriteString(m.BetID)
	w.WriteString(m.RoundID)
	w.WriteI64(m.RemainingBalance)
	return w.Bytes()
}

// BetFinishedReq is CMD_BET_FINISHED_REQ's body.
type BetFinishedReq struct {
	RoundID string
}

func DecodeBetFinishedReq(body []byte) (BetFinishedReq, error) {
	r := NewReader(body)
	roundID, err := r.ReadString()
	if err != nil {
		return BetFinishedReq{}, err
	}
	if !r.Done() {
		return BetFinishedReq{}, ErrInvalidFormat
	}
	return BetFinishedReq{RoundID: roundID}, nil
}

// BetFinishedRsp is CMD_BET_FINISHED_RSP's body.
type BetFinishedRsp struct {
	Success bool
	Message string
	RoundID string
}

func (m BetFinishedRsp) Encode() []byte {
	w := NewWriter()
	w.WriteBool(m.Success)
	w.WriteString(m.Message)
	w.WriteString(m.RoundID)
	return w.Bytes()
}

// ReckonResultReq is CMD_RECKON_RESULT_REQ's body.
type ReckonResultReq struct {
	RoundID string
}

func DecodeReckonResultReq(body []byte) (ReckonResultReq, error) {
	r := NewReader(body)
	roundID, err := r.ReadString()
	if err != nil {
		return ReckonResultReq{}, err
	}
	if !r.Done() {
		return ReckonResultReq{}, ErrInvalidFormat
	}
	return ReckonResultReq{RoundID: roundID}, nil
}

// BetResult is one settled bet, as reported in RECKON_RESULT_RSP.
type BetResult struct {
	BetID     string
	DiceFace  uint32
	BetAmount int64
	Won       bool
	Payout    int64
	RoundID   string
}

func (b BetResult) encode(w *Writer) {
	w.WriteString(b.BetID)
	w.WriteU32(b.DiceFace)
	w.WriteI64(b.BetAmount)
	w.WriteBool(b.Won)
	w.WriteI64(b.Payout)
	w.WriteString(b.RoundID)
}

// ReckonResultRsp is CMD_RECKON_RESULT_RSP's body.
type ReckonResultRsp struct {
	DiceResult         uint32
	BetResults         []BetResult
	TotalWinnings      int64
	NewBalance         int64
	UpdatedJackpotPool int64
	RoundID            string
}

func (m ReckonResultRsp) Encode() []byte {
	w := NewWriter()
	w.WriteU32(m.DiceResult)
	w.WriteU32(uint32(len(m.BetResults)))
	for _, b := range m.BetResults {
		b.encode(w)
	}
	w.WriteI64(m.TotalWinnings)
	w.WriteI64(m.NewBalance)
	w.WriteI64(m.UpdatedJackpotPool)
	w.WriteString(m.RoundID)
	return w.Bytes()
}

// ErrorRsp is CMD_ERROR_RSP's body. It may stand in for any response.
type ErrorRsp struct {
	ErrorCode    uint32
	ErrorMessage string
	Details      string
}

func (m ErrorRsp) Encode() []byte {
	w := NewWriter()
	w.WriteU32(m.ErrorCode)
	w.WriteString(m.ErrorMessage)
	w.WriteString(m.Details)
	return w.Bytes()
}
