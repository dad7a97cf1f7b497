package netplay

import (
	"encoding/json"
	"fmt"

	"github.com/qnkhuat/chessterm/pkg/model"
)

type MessageType int

const (
	TypeMessageHello MessageType = iota
	TypeMessageMove
	TypeMessageBye
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageHello:
		return "TypeMessageHello"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageBye:
		return "TypeMessageBye"
	default:
		return "Unknown MessageType"
	}
}

type Message interface {
	Type() MessageType
}

// Transport wraps every message on the wire, one JSON object per line
type Transport struct {
	MsgType MessageType
	Data    json.RawMessage
}

// Hello opens a session in both directions. Only the host fills in MatchID,
// Side (the side the joiner plays) and Fen.
type Hello struct {
	Name    string
	MatchID string
	Side    model.Side
	Fen     string
}

func (m *Hello) Type() MessageType { return TypeMessageHello }

// MoveMsg carries a move in algebraic squares, e.g. From "e7" To "e8" Promotion "Queen"
type MoveMsg struct {
	From      string
	To        string
	Promotion string `json:",omitempty"`
}

func (m *MoveMsg) Type() MessageType { return TypeMessageMove }

type Bye struct {
	Reason string
}

func (m *Bye) Type() MessageType { return TypeMessageBye }

// Encode frames a message as a single line
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(Transport{MsgType: m.Type(), Data: data})
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func Decode(line []byte) (Message, error) {
	var t Transport
	if err := json.Unmarshal(line, &t); err != nil {
		return nil, err
	}

	var m Message
	switch t.MsgType {
	case TypeMessageHello:
		m = &Hello{}
	case TypeMessageMove:
		m = &MoveMsg{}
	case TypeMessageBye:
		m = &Bye{}
	default:
		return nil, fmt.Errorf("netplay: unknown message type %d", t.MsgType)
	}
	if err := json.Unmarshal(t.Data, m); err != nil {
		return nil, fmt.Errorf("netplay: decode %s: %w", t.MsgType, err)
	}
	return m, nil
}
