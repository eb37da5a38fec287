// Package ascii implements the command codec for the SmarAct MCS/SDC ASCII
// programming interface.
//
// Commands are encoded as single ASCII lines of the form
//
//	:<MNEMONIC><addr>[,<param>]*
//
// where the leading ':' is the protocol sentinel, the mnemonic is a short
// upper-case token (e.g. "MPA" for an absolute closed-loop move), the address
// selects the channel, and parameters are base-10 integers. Controller-level
// commands (e.g. "GIV") carry no address. Replies mirror the grammar with a
// reply mnemonic followed by the address and the payload values; error replies
// use the reserved "E" mnemonic and unsolicited event/status reports use "ES".
//
// The codec is purely a translation layer: it never performs I/O and never
// mutates axis state. Lines that fail tokenization, carry an unknown mnemonic,
// a wrong value count, or a malformed number are rejected with a decode error
// rather than being coerced to defaults.
//
// Units follow the controller's native contract: distances in nanometers,
// angles in micro-degrees, time in milliseconds, linear velocity in nm/s,
// linear acceleration in um/s^2. Angular positions travel on the wire as an
// (angle, revolution) pair with angle in [0, 360e6); SplitAngle and
// CombineAngle convert between the pair and a single signed micro-degree
// value without rounding loss.
package ascii
