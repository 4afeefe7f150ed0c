// Package enums provides u8 <-> variant bijections for the protocol's
// bounded enumerations, keyed by static maps rather than a switch per
// direction.
package enums

import "fmt"

// UnknownValueError is returned when a code falls outside an enum's
// declared set.
type UnknownValueError struct {
	Enum string
	Code uint8
}

func (e UnknownValueError) Error() string {
	return fmt.Sprintf("embodycodec: unknown %s code 0x%02x", e.Enum, e.Code)
}

// SleepMode mirrors the reference device's sleep-state attribute.
type SleepMode uint8

const (
	SleepModeUnknown SleepMode = 0
	SleepModeAwake   SleepMode = 1
	SleepModeLight   SleepMode = 2
	SleepModeDeep    SleepMode = 3
)

var sleepModeNames = map[SleepMode]string{
	SleepModeUnknown: "unknown",
	SleepModeAwake:   "awake",
	SleepModeLight:   "light",
	SleepModeDeep:    "deep",
}

// DecodeSleepMode validates code against the declared SleepMode set.
func DecodeSleepMode(code uint8) (SleepMode, error) {
	v := SleepMode(code)
	if _, ok := sleepModeNames[v]; !ok {
		return 0, UnknownValueError{Enum: "sleep_mode", Code: code}
	}
	return v, nil
}

func (v SleepMode) String() string { return sleepModeNames[v] }

// FirmwareUpdateState mirrors the device's OTA update state machine.
type FirmwareUpdateState uint8

const (
	FirmwareUpdateIdle       FirmwareUpdateState = 0
	FirmwareUpdateInProgress FirmwareUpdateState = 1
	FirmwareUpdateVerifying  FirmwareUpdateState = 2
	FirmwareUpdateComplete   FirmwareUpdateState = 3
	FirmwareUpdateFailed     FirmwareUpdateState = 4
)

var firmwareUpdateStateNames = map[FirmwareUpdateState]string{
	FirmwareUpdateIdle:       "idle",
	FirmwareUpdateInProgress: "in_progress",
	FirmwareUpdateVerifying:  "verifying",
	FirmwareUpdateComplete:   "complete",
	FirmwareUpdateFailed:     "failed",
}

func DecodeFirmwareUpdateState(code uint8) (FirmwareUpdateState, error) {
	v := FirmwareUpdateState(code)
	if _, ok := firmwareUpdateStateNames[v]; !ok {
		return 0, UnknownValueError{Enum: "firmware_update_state", Code: code}
	}
	return v, nil
}

func (v FirmwareUpdateState) String() string { return firmwareUpdateStateNames[v] }

// ReportingTrigger distinguishes the two ways ConfigureReporting can ask
// the device to emit AttributeChanged notifications.
type ReportingTrigger uint8

const (
	ReportingOnChange ReportingTrigger = 0
	ReportingPeriodic ReportingTrigger = 1
)

var reportingTriggerNames = map[ReportingTrigger]string{
	ReportingOnChange: "on_change",
	ReportingPeriodic: "periodic",
}

func DecodeReportingTrigger(code uint8) (ReportingTrigger, error) {
	v := ReportingTrigger(code)
	if _, ok := reportingTriggerNames[v]; !ok {
		return 0, UnknownValueError{Enum: "reporting_trigger", Code: code}
	}
	return v, nil
}

func (v ReportingTrigger) String() string { return reportingTriggerNames[v] }

// CommandID is ExecuteCommand's sub-discriminant, imported verbatim from
// the reference device's command table.
type CommandID uint8

const (
	CommandPressButton           CommandID = 0x03
	CommandForceOnBody           CommandID = 0x04
	CommandForceUSBConnection    CommandID = 0x05
	CommandForceBLEConnection    CommandID = 0x06
	CommandForceBatteryLevel     CommandID = 0x07
	CommandAfeReadAllRegs        CommandID = 0xA1
	CommandAfeWriteRegister      CommandID = 0xA2
	CommandAfeCalibrationCommand CommandID = 0xA3
	CommandAfeGainSetting        CommandID = 0xA4
)

var commandIDNames = map[CommandID]string{
	CommandPressButton:           "press_button",
	CommandForceOnBody:           "force_on_body",
	CommandForceUSBConnection:    "force_usb_connection",
	CommandForceBLEConnection:    "force_ble_connection",
	CommandForceBatteryLevel:     "force_battery_level",
	CommandAfeReadAllRegs:        "afe_read_all_regs",
	CommandAfeWriteRegister:      "afe_write_register",
	CommandAfeCalibrationCommand: "afe_calibration_command",
	CommandAfeGainSetting:        "afe_gain_setting",
}

func DecodeCommandID(code uint8) (CommandID, error) {
	v := CommandID(code)
	if _, ok := commandIDNames[v]; !ok {
		return 0, UnknownValueError{Enum: "command_id", Code: code}
	}
	return v, nil
}

func (v CommandID) String() string { return commandIDNames[v] }
