package wire

import "testing"

// Encoding-then-decoding a body must preserve every field bit-for-bit.

func TestLoginReqRoundTrip(t *testing.T) {
	req := LoginReq{Username: "testuser1", Password: "password123"}
	w := NewWriter()
	w.WriteString(req.Username)
	w.WriteString(req.Password)

	got, err := DecodeLoginReq(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeLoginReq: %v", err)
	}
	if got != req {
		t.Fatalf("got %+v, want %+v", got, req)
	}
}

func TestLoginRspEncodeDecode(t *testing.T) {
	rsp := LoginRsp{
		Success:      true,
		Message:      "welcome back",
		SessionToken: "deadbeef",
		UserID:       7,
		Balance:      1500,
	}
	body := rsp.Encode()
	r := NewReader(body)

	success, _ := r.ReadBool()
	message, _ := r.ReadString()
	token, _ := r.ReadString()
	userID, _ := r.ReadU32()
	balance, _ := r.ReadI64()

	if !r.Done() {
		t.Fatal("trailing bytes after decoding every LoginRsp field")
	}
	got := LoginRsp{success, message, token, userID, balance}
	if got != rsp {
		t.Fatalf("got %+v, want %+v", got, rsp)
	}
}

func TestBetPlacementReqOptionalRoundID(t *testing.T) {
	req := BetPlacementReq{DiceFace: 3, Amount: 100, RoundID: ""}
	w := NewWriter()
	w.WriteU32(req.DiceFace)
	w.WriteI64(req.Amount)
	w.WriteString(req.RoundID)

	got, err := DecodeBetPlacementReq(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeBetPlacementReq: %v", err)
	}
	if got != req {
		t.Fatalf("got %+v, want %+v", got, req)
	}
}

func TestSnapshotRspWithActiveBets(t *testing.T) {
	rsp := SnapshotRsp{
		UserBalance: 900,
		ActiveBets: []BetSummary{
			{DiceFace: 3, Amount: 100, BetID: "bet-1", RoundID: "round-1"},
			{DiceFace: 5, Amount: 50, BetID: "bet-2", RoundID: "round-1"},
		},
		CurrentRoom: 1,
		JackpotPool: 42,
		RoundStatus: RoundStatusBetting,
	}
	body := rsp.Encode()
	r := NewReader(body)

	balance, _ := r.ReadI64()
	count, _ := r.ReadU32()
	if int(count) != len(rsp.ActiveBets) {
		t.Fatalf("count = %d, want %d", count, len(rsp.ActiveBets))
	}
	var bets []BetSummary
	for i := uint32(0); i < count; i++ {
		diceFace, _ := r.ReadU32()
		amount, _ := r.ReadI64()
		betID, _ := r.ReadString()
		roundID, _ := r.ReadString()
		bets = append(bets, BetSummary{diceFace, amount, betID, roundID})
	}
	room, _ := r.ReadU32()
	jackpot, _ := r.ReadI64()
	status, _ := r.ReadU8()

	if !r.Done() {
		t.Fatal("trailing bytes after decoding every SnapshotRsp field")
	}
	if balance != rsp.UserBalance || room != rsp.CurrentRoom || jackpot != rsp.JackpotPool || status != rsp.RoundStatus {
		t.Fatalf("scalar mismatch: balance=%d room=%d jackpot=%d status=%d", balance, room, jackpot, status)
	}
	for i, b := range bets {
		if b != rsp.ActiveBets[i] {
			t.Fatalf("bet[%d] = %+v, want %+v", i, b, rsp.ActiveBets[i])
		}
	}
}

func TestErrorRspEncodeDecode(t *testing.T) {
	rsp := ErrorRsp{ErrorCode: ErrCodeInvalidFormat, ErrorMessage: "bad frame", Details: ""}
	body := rsp.Encode()
	r := NewReader(body)
	code, _ := r.ReadU32()
	msg, _ := r.ReadString()
	details, _ := r.ReadString()
	if !r.Done() {
		t.Fatal("trailing bytes after decoding every ErrorRsp field")
	}
	if code != rsp.ErrorCode || msg != rsp.ErrorMessage || details != rsp.Details {
		t.Fatalf("got (%d,%q,%q), want (%d,%q,%q)", code, msg, details, rsp.ErrorCode, rsp.ErrorMessage, rsp.Details)
	}
}
