package config

const hidTemplate = `transport = "hid"
vendor_id = 0x2544
product_id = 0x0007
max_frame_len = 4096
log_level = "info"
`

const fileReplayTemplate = `transport = "filereplay"
addr = "capture.bin"
max_frame_len = 4096
log_level = "debug"
`
