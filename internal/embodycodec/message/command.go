package message

import (
	"github.com/danmuck/edgectl/internal/embodycodec/cursor"
	"github.com/danmuck/edgectl/internal/embodycodec/enums"
)

// ExecuteCommand asks the device to run one of its built-in commands
// (button press simulation, forced on-body/USB/BLE state, AFE register
// access). Payload's shape depends on Cmd and is carried opaquely here;
// no per-command payload decoding is attempted here.
type ExecuteCommand struct {
	Cmd     enums.CommandID
	Payload []byte
}

func (ExecuteCommand) Type() Type { return TypeExecuteCommand }

func decodeExecuteCommand(body []byte) (Message, error) {
	r := cursor.New(body)
	cmd, err := r.U8()
	if err != nil {
		return nil, err
	}
	return ExecuteCommand{Cmd: enums.CommandID(cmd), Payload: r.Rest()}, nil
}

func encodeExecuteCommand(msg Message) ([]byte, error) {
	m := msg.(ExecuteCommand)
	w := cursor.NewWriter(1 + len(m.Payload))
	w.U8(uint8(m.Cmd))
	w.Raw(m.Payload)
	return w.Bytes(), nil
}

// ExecuteCommandResponse carries the command's result code and an
// optional response payload (e.g. AfeReadAllRegs register dump).
type ExecuteCommandResponse struct {
	ResponseCode uint8
	Payload      []byte
}

func (ExecuteCommandResponse) Type() Type { return TypeExecuteCommandResponse }

func decodeExecuteCommandResponse(body []byte) (Message, error) {
	r := cursor.New(body)
	code, err := r.U8()
	if err != nil {
		return nil, err
	}
	return ExecuteCommandResponse{ResponseCode: code, Payload: r.Rest()}, nil
}

func encodeExecuteCommandResponse(msg Message) ([]byte, error) {
	m := msg.(ExecuteCommandResponse)
	w := cursor.NewWriter(1 + len(m.Payload))
	w.U8(m.ResponseCode)
	w.Raw(m.Payload)
	return w.Bytes(), nil
}
