package message

// dispatchEntry pairs a type code's body decoder with its encoder,
// indexed by the same Type. A static table rather than a type switch, so
// adding a variant never touches the decode/encode entry points below.
type dispatchEntry struct {
	decode func([]byte) (Message, error)
	encode func(Message) ([]byte, error)
}

var dispatch = map[Type]dispatchEntry{
	TypeHeartbeat:         {decodeHeartbeat, encodeHeartbeat},
	TypeHeartbeatResponse: {decodeHeartbeatResponse, encodeHeartbeatResponse},
	TypeNackResponse:      {decodeNackResponse, encodeNackResponse},

	TypeSetAttribute:               {decodeSetAttribute, encodeSetAttribute},
	TypeSetAttributeResponse:       {decodeSetAttributeResponse, encodeSetAttributeResponse},
	TypeGetAttribute:               {decodeGetAttribute, encodeGetAttribute},
	TypeGetAttributeResponse:       {decodeGetAttributeResponse, encodeGetAttributeResponse},
	TypeResetAttribute:             {decodeResetAttribute, encodeResetAttribute},
	TypeResetAttributeResponse:     {decodeResetAttributeResponse, encodeResetAttributeResponse},
	TypeConfigureReporting:         {decodeConfigureReporting, encodeConfigureReporting},
	TypeConfigureReportingResponse: {decodeConfigureReportingResponse, encodeConfigureReportingResponse},
	TypeResetReporting:             {decodeResetReporting, encodeResetReporting},
	TypeResetReportingResponse:     {decodeResetReportingResponse, encodeResetReportingResponse},
	TypePeriodicRecording:          {decodePeriodicRecording, encodePeriodicRecording},
	TypePeriodicRecordingResponse:  {decodePeriodicRecordingResponse, encodePeriodicRecordingResponse},

	TypeAttributeChanged:           {decodeAttributeChanged, encodeAttributeChanged},
	TypeAttributeChangedResponse:   {decodeAttributeChangedResponse, encodeAttributeChangedResponse},
	TypeRawPulseChanged:            {decodeRawPulseChanged, encodeRawPulseChanged},
	TypeRawPulseChangedResponse:    {decodeRawPulseChangedResponse, encodeRawPulseChangedResponse},
	TypeRawPulseListChanged:        {decodeRawPulseListChanged, encodeRawPulseListChanged},
	TypeRawPulseListChangedResponse: {decodeRawPulseListChangedResponse, encodeRawPulseListChangedResponse},

	TypeAlarm:         {decodeAlarm, encodeAlarm},
	TypeAlarmResponse: {decodeAlarmResponse, encodeAlarmResponse},

	TypeListFiles:              {decodeListFiles, encodeListFiles},
	TypeListFilesResponse:      {decodeListFilesResponse, encodeListFilesResponse},
	TypeGetFile:                {decodeGetFile, encodeGetFile},
	TypeGetFileResponse:        {decodeGetFileResponse, encodeGetFileResponse},
	TypeSendFile:               {decodeSendFile, encodeSendFile},
	TypeSendFileResponse:       {decodeSendFileResponse, encodeSendFileResponse},
	TypeDeleteFile:             {decodeDeleteFile, encodeDeleteFile},
	TypeDeleteFileResponse:     {decodeDeleteFileResponse, encodeDeleteFileResponse},
	TypeGetFileUart:            {decodeGetFileUart, encodeGetFileUart},
	TypeGetFileUartResponse:    {decodeGetFileUartResponse, encodeGetFileUartResponse},
	TypeDeleteAllFiles:         {decodeDeleteAllFiles, encodeDeleteAllFiles},
	TypeDeleteAllFilesResponse: {decodeDeleteAllFilesResponse, encodeDeleteAllFilesResponse},
	TypeReformatDisk:           {decodeReformatDisk, encodeReformatDisk},
	TypeReformatDiskResponse:   {decodeReformatDiskResponse, encodeReformatDiskResponse},

	TypeExecuteCommand:         {decodeExecuteCommand, encodeExecuteCommand},
	TypeExecuteCommandResponse: {decodeExecuteCommandResponse, encodeExecuteCommandResponse},
}

// Decode dispatches on typ and parses body into the matching Message
// variant, or returns UnknownMessageTypeError for an unregistered code.
func Decode(typ Type, body []byte) (Message, error) {
	entry, ok := dispatch[typ]
	if !ok {
		return nil, UnknownMessageTypeError{Code: typ}
	}
	return entry.decode(body)
}

// EncodeBody serializes msg's body using the encoder registered for its
// own Type(). Callers that need the full wire frame (type + length +
// body + crc) should use the frame package's EncodeMessage instead.
func EncodeBody(msg Message) ([]byte, error) {
	entry, ok := dispatch[msg.Type()]
	if !ok {
		return nil, UnknownMessageTypeError{Code: msg.Type()}
	}
	return entry.encode(msg)
}
