//go:build wasm

package wasm

// This file documents the export interface a resume computation module
// must implement (for example with //go:wasmexport under TinyGo).
//
// NOTE: uint32 is used for pointers and lengths because WebAssembly uses
// a 32-bit linear memory model. All guest addresses are 32-bit integers.
//
// Allocator pair. The host copies every payload through these so the
// guest's own bookkeeping stays consistent:
//
// //go:wasmexport allocate
// func allocate(size uint32) uint32
//
// //go:wasmexport deallocate
// func deallocate(ptr, size uint32)
//
// Parsers. Each takes (ptr, len) of the input payload and returns the
// canonical document JSON packed as ptr<<32|len, or 0 when the input
// cannot be parsed:
//
// //go:wasmexport parse_json_resume
// func parseJSONResume(ptr, length uint32) uint64
//
// //go:wasmexport parse_linkedin_export
// func parseLinkedInExport(ptr, length uint32) uint64
//
// //go:wasmexport parse_reactive_v3
// func parseReactiveV3(ptr, length uint32) uint64
//
// Host imports. The engine exposes a "host" module with:
//
//	log_message(level, ptr, length)  // level: 0 debug, 1 info, 2 warn, 3 error
