// Package transport provides the byte-level channels the protocol engine
// talks through: a serial line (RS-232/USB) and a TCP socket, both exposed
// behind the same line-oriented Transport interface, plus an in-memory
// scripted implementation for tests.
//
// A Transport is a duplex channel that writes whole command lines and reads
// whole newline-terminated reply lines. Framing details (port parameters,
// dial/reconnect policy) stay inside the implementations; the protocol engine
// in package mcs only sees lines and timeouts.
//
// Transports are not safe for concurrent use. The channel multiplexer in
// package mcs is the single owner of a transport and serializes all access
// to it.
package transport
