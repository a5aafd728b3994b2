package errors

var messages = map[Errno]string{
	InvalidRegisterIndex: "invalid register index (%d)",
	NoROMLoaded:          "no ROM has been loaded",
	ROMTooLarge:          "ROM is too large for the cartridge window (%d bytes, max %d)",
	BIOSWrongSize:        "BIOS image is the wrong size (%d bytes, want %d)",
	NotRunning:           "core has not been reset since it was initialised",

	UnimplementedInstruction:        "unimplemented instruction (%#08x) at %#08x",
	UndefinedCoprocessorInstruction: "undefined or coprocessor instruction (%#08x) at %#08x",

	InvalidDMAChannel: "invalid DMA channel index (%d)",
}
