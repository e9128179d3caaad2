package ws

import (
	"errors"
	"log"

	"dicehouse/domain"
	"dicehouse/store"
	"dicehouse/wire"
)

// dispatch routes cmdID to its handler, gating anything but LOGIN_REQ
// behind authentication, and converting an unexpected panic into
// SERVER_ERROR rather than killing the connection.
func (c *connection) dispatch(cmdID uint32, body []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ panic handling cmd %#x from %s: %v", cmdID, c.id, r)
			c.sendError(wire.ErrCodeServerError, "internal error", "")
		}
	}()

	if cmdID != wire.CmdLoginReq && !c.authenticated {
		c.sendError(wire.ErrCodeAuthRequired, "login required", "")
		return
	}

	switch cmdID {
	case wire.CmdLoginReq:
		c.handleLogin(body)
	case wire.CmdRoomJoinReq:
		c.handleRoomJoin(body)
	case wire.CmdSnapshotReq:
		c.handleSnapshot(body)
	case wire.CmdBetPlacementReq:
		c.handleBetPlacement(body)
	case wire.CmdBetFinishedReq:
		c.handleBetFinished(body)
	case wire.CmdReckonResultReq:
		c.handleReckonResult(body)
	default:
		c.sendError(wire.ErrCodeInvalidFormat, "unknown command", "")
	}
}

func (c *connection) handleLogin(body []byte) {
	req, err := wire.DecodeLoginReq(body)
	if err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed login request", "")
		return
	}

	user, err := c.dispatcher.Store.Authenticate(req.Username, req.Password, c.dispatcher.NewToken)
	if errors.Is(err, store.ErrSessionActive) {
		c.writeFrame(wire.CmdLoginRsp, wire.LoginRsp{
			Success: false,
			Message: "User already logged in",
		}.Encode())
		return
	}
	if err != nil {
		c.sendError(wire.ErrCodeServerError, "internal error", "")
		return
	}
	if user == nil {
		c.writeFrame(wire.CmdLoginRsp, wire.LoginRsp{
			Success: false,
			Message: "Invalid username or password",
		}.Encode())
		return
	}

	c.authenticated = true
	c.userID = user.UserID
	c.dispatcher.Store.BindConnection(c.id, user.UserID)

	c.writeFrame(wire.CmdLoginRsp, wire.LoginRsp{
		Success:      true,
		Message:      "login successful",
		SessionToken: user.SessionToken,
		UserID:       uint32(user.UserID),
		Balance:      user.Balance,
	}.Encode())
}

func (c *connection) handleRoomJoin(body []byte) {
	req, err := wire.DecodeRoomJoinReq(body)
	if err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed room join request", "")
		return
	}

	if !c.dispatcher.Store.JoinRoom(c.userID, int(req.RoomID)) {
		c.writeFrame(wire.CmdRoomJoinRsp, wire.RoomJoinRsp{
			Success: false,
			Message: "room is full or does not exist",
			RoomID:  req.RoomID,
		}.Encode())
		return
	}

	room, _ := c.dispatcher.Store.GetRoom(int(req.RoomID))
	c.writeFrame(wire.CmdRoomJoinRsp, wire.RoomJoinRsp{
		Success:     true,
		Message:     "joined room",
		RoomID:      req.RoomID,
		PlayerCount: uint32(room.PlayerCount()),
		JackpotPool: room.JackpotPool,
	}.Encode())
}

func (c *connection) handleSnapshot(body []byte) {
	if _, err := wire.DecodeSnapshotReq(body); err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed snapshot request", "")
		return
	}

	view, ok := c.dispatcher.Engine.Snapshot(c.userID)
	if !ok {
		c.sendError(wire.ErrCodeServerError, "user not found", "")
		return
	}

	bets := make([]wire.BetSummary, 0, len(view.Bets))
	for _, b := range view.Bets {
		bets = append(bets, wire.BetSummary{
			DiceFace: uint32(b.DiceFace),
			Amount:   b.Amount,
			BetID:    b.BetID,
			RoundID:  view.RoundID,
		})
	}

	c.writeFrame(wire.CmdSnapshotRsp, wire.SnapshotRsp{
		UserBalance: view.Balance,
		ActiveBets:  bets,
		CurrentRoom: uint32(view.RoomID),
		JackpotPool: view.JackpotPool,
		RoundStatus: roundStatusWire(view.RoundID, view.RoundStatus),
	}.Encode())
}

// roundStatusWire maps domain.RoundStatus to the wire enum, reporting
// NO_ACTIVE_ROUND when there is no active round at all.
func roundStatusWire(roundID string, status domain.RoundStatus) uint8 {
	if roundID == "" {
		return wire.RoundStatusNone
	}
	if status == domain.StatusAwaitingResults {
		return wire.RoundStatusAwaitingResults
	}
	return wire.RoundStatusBetting
}

func (c *connection) handleBetPlacement(body []byte) {
	req, err := wire.DecodeBetPlacementReq(body)
	if err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed bet placement request", "")
		return
	}

	ok, message, bet := c.dispatcher.Engine.PlaceBet(c.userID, int(req.DiceFace), req.Amount, req.RoundID)
	rsp := wire.BetPlacementRsp{Success: ok, Message: message}
	if ok {
		rsp.BetID = bet.BetID
		rsp.RoundID = bet.RoundID
		if user, found := c.dispatcher.Store.GetUser(c.userID); found {
			rsp.RemainingBalance = user.Balance
		}
	}
	c.writeFrame(wire.CmdBetPlacementRsp, rsp.Encode())
}

func (c *connection) handleBetFinished(body []byte) {
	req, err := wire.DecodeBetFinishedReq(body)
	if err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed bet finished request", "")
		return
	}

	ok, message := c.dispatcher.Engine.FinishBetting(c.userID, req.RoundID)
	c.writeFrame(wire.CmdBetFinishedRsp, wire.BetFinishedRsp{
		Success: ok,
		Message: message,
		RoundID: req.RoundID,
	}.Encode())
}

func (c *connection) handleReckonResult(body []byte) {
	req, err := wire.DecodeReckonResultReq(body)
	if err != nil {
		c.sendError(wire.ErrCodeInvalidFormat, "malformed reckon result request", "")
		return
	}

	ok, message, outcome := c.dispatcher.Engine.Settle(c.userID, req.RoundID)
	if !ok {
		c.sendError(wire.ErrCodeInvalidBet, message, "")
		return
	}

	results := make([]wire.BetResult, 0, len(outcome.Bets))
	for _, b := range outcome.Bets {
		results = append(results, wire.BetResult{
			BetID:     b.BetID,
			DiceFace:  uint32(b.DiceFace),
			BetAmount: b.Amount,
			Won:       b.Won,
			Payout:    b.Payout,
			RoundID:   req.RoundID,
		})
	}

	c.writeFrame(wire.CmdReckonResultRsp, wire.ReckonResultRsp{
		DiceResult:         uint32(outcome.DiceResult),
		BetResults:         results,
		TotalWinnings:      outcome.TotalWinnings,
		NewBalance:         outcome.NewBalance,
		UpdatedJackpotPool: outcome.JackpotPool,
		RoundID:            req.RoundID,
	}.Encode())
}
