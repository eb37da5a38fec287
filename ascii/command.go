package ascii

import (
	"fmt"
	"strconv"
)

// Sentinel is the prefix byte that starts every command and reply line.
const Sentinel = ':'

// AddrController is the pseudo-address of the controller itself. It is used
// as the target of controller-level commands and appears as the address of
// replies to them (e.g. ":E-1,0").
const AddrController = -1

// Command is an immutable, typed representation of one outgoing ASCII
// command. Build it with NewCommand and serialize it with Encode.
type Command struct {
	mnemonic Mnemonic
	addr     int
	params   []int64
}

// NewCommand builds a Command for the given mnemonic, target address and
// parameters. addr must be AddrController for controller-level mnemonics and
// a channel index (>= 0) for axis-level ones. The parameter count must match
// the mnemonic's fixed arity; NewCommand fails otherwise and nothing is sent.
func NewCommand(m Mnemonic, addr int, params ...int64) (Command, error) {
	spec, ok := cmdSpecs[m]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownMnemonic, m)
	}

	if spec.axis && addr < 0 {
		return Command{}, fmt.Errorf("%w: command %q requires a channel address", ErrParamRange, m)
	}
	if !spec.axis && addr != AddrController {
		return Command{}, fmt.Errorf("%w: command %q is controller-level and takes no channel address", ErrParamRange, m)
	}

	if len(params) != spec.nparams {
		return Command{}, fmt.Errorf("%w: command %q takes %d parameters, got %d",
			ErrBadParamCount, m, spec.nparams, len(params))
	}

	cmd := Command{mnemonic: m, addr: addr}
	if len(params) > 0 {
		cmd.params = make([]int64, len(params))
		copy(cmd.params, params)
	}

	return cmd, nil
}

// Mnemonic returns the command's operation mnemonic.
func (c Command) Mnemonic() Mnemonic { return c.mnemonic }

// Addr returns the command's target address, AddrController for
// controller-level commands.
func (c Command) Addr() int { return c.addr }

// Params returns a copy of the command's parameter list.
func (c Command) Params() []int64 {
	if len(c.params) == 0 {
		return nil
	}
	params := make([]int64, len(c.params))
	copy(params, c.params)

	return params
}

// ReplyMnemonic returns the reply mnemonic that satisfies this command.
// Commands without a value payload are acknowledged with an error reply
// of code 0.
func (c Command) ReplyMnemonic() Mnemonic {
	return cmdSpecs[c.mnemonic].reply
}

// Encode serializes the command into its ASCII wire form without the line
// terminator; the transport appends the delimiter when writing. Numeric
// parameters are rendered as plain base-10 integers.
func (c Command) Encode() ([]byte, error) {
	spec, ok := cmdSpecs[c.mnemonic]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMnemonic, c.mnemonic)
	}

	// 1 sentinel + mnemonic + up to 21 bytes per value incl. separator.
	line := make([]byte, 0, 1+len(c.mnemonic)+21*(len(c.params)+1))
	line = append(line, Sentinel)
	line = append(line, c.mnemonic...)

	first := true
	if spec.axis {
		line = strconv.AppendInt(line, int64(c.addr), 10)
		first = false
	}
	for _, p := range c.params {
		if !first {
			line = append(line, ',')
		}
		line = strconv.AppendInt(line, p, 10)
		first = false
	}

	return line, nil
}

// String returns the encoded wire form for diagnostics.
func (c Command) String() string {
	line, err := c.Encode()
	if err != nil {
		return fmt.Sprintf("!%s", err)
	}

	return string(line)
}
