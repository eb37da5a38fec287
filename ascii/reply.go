package ascii

import (
	"bytes"
	"fmt"
	"strconv"
)

// ReplyKind classifies a decoded reply line.
type ReplyKind uint8

const (
	// ReplyValue is a solicited reply carrying a value payload.
	ReplyValue ReplyKind = iota
	// ReplyStatusReport is an unsolicited event/status report ("ES").
	ReplyStatusReport
	// ReplyError is an error/acknowledge reply ("E"); code 0 acknowledges
	// a well-formed request.
	ReplyError
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyValue:
		return "value"
	case ReplyStatusReport:
		return "status-report"
	case ReplyError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is one decoded ASCII reply line.
type Reply struct {
	kind     ReplyKind
	mnemonic Mnemonic
	addr     int
	payload  []int64
}

// Kind returns the reply's classification.
func (r Reply) Kind() ReplyKind { return r.kind }

// Mnemonic returns the reply mnemonic.
func (r Reply) Mnemonic() Mnemonic { return r.mnemonic }

// Addr returns the address the reply refers to, AddrController for
// controller-level replies.
func (r Reply) Addr() int { return r.addr }

// Payload returns a copy of the reply's values after the address.
func (r Reply) Payload() []int64 {
	if len(r.payload) == 0 {
		return nil
	}
	vals := make([]int64, len(r.payload))
	copy(vals, r.payload)

	return vals
}

// Value returns the i-th payload value, 0 if out of range.
func (r Reply) Value(i int) int64 {
	if i < 0 || i >= len(r.payload) {
		return 0
	}

	return r.payload[i]
}

// ErrorCode returns the controller error code of an error reply,
// ErrCodeNone for any other reply kind.
func (r Reply) ErrorCode() ErrCode {
	if r.kind != ReplyError {
		return ErrCodeNone
	}

	return ErrCode(r.payload[0])
}

// Status returns the status code carried by a status reply ("S") or an
// event/status report ("ES").
func (r Reply) Status() Status {
	return Status(r.payload[0])
}

// IsAck reports whether the reply is an error reply with code 0, the
// controller's acknowledge for commands without a value payload.
func (r Reply) IsAck() bool {
	return r.kind == ReplyError && r.ErrorCode() == ErrCodeNone
}

func (r Reply) String() string {
	return fmt.Sprintf("%s(addr=%d, kind=%s, payload=%v)", r.mnemonic, r.addr, r.kind, r.payload)
}

// Decode parses one reply line into a Reply. The line may carry a trailing
// CR/LF, which is stripped. It fails when the sentinel is missing, the
// mnemonic is unknown, the value count does not match the mnemonic's arity,
// or a value token is not a valid signed 64-bit base-10 integer. A failed
// decode never yields a partially-populated Reply.
func Decode(line []byte) (Reply, error) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return Reply{}, ErrEmptyLine
	}
	if line[0] != Sentinel {
		return Reply{}, fmt.Errorf("%w: %q", ErrMissingSentinel, line)
	}

	body := line[1:]

	// The mnemonic is the longest leading run of upper-case letters; values
	// always start with a digit or a sign.
	n := 0
	for n < len(body) && body[n] >= 'A' && body[n] <= 'Z' {
		n++
	}
	if n == 0 {
		return Reply{}, fmt.Errorf("%w: %q", ErrEmptyLine, line)
	}

	mnemonic := Mnemonic(body[:n])
	spec, ok := replySpecs[mnemonic]
	if !ok {
		return Reply{}, fmt.Errorf("%w: reply %q", ErrUnknownMnemonic, mnemonic)
	}

	var vals []int64
	if rest := body[n:]; len(rest) > 0 {
		tokens := bytes.Split(rest, []byte{','})
		vals = make([]int64, 0, len(tokens))
		for _, tok := range tokens {
			v, err := strconv.ParseInt(string(tok), 10, 64)
			if err != nil {
				return Reply{}, fmt.Errorf("%w: %q in line %q", ErrBadNumber, tok, line)
			}
			vals = append(vals, v)
		}
	}

	want := spec.nvals
	if spec.addr {
		want++
	}
	if len(vals) != want {
		return Reply{}, fmt.Errorf("%w: reply %q carries %d values, want %d",
			ErrBadParamCount, mnemonic, len(vals), want)
	}

	rep := Reply{kind: spec.kind, mnemonic: mnemonic, addr: AddrController}
	if spec.addr {
		rep.addr = int(vals[0])
		vals = vals[1:]
	}
	rep.payload = vals

	return rep, nil
}
