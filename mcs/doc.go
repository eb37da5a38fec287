// Package mcs implements the protocol engine for SmarAct MCS/SDC motion
// controllers: the channel multiplexer that serializes request/reply traffic
// on one transport, the per-axis motion state machine, and the Controller
// facade that application code talks to.
//
// The protocol is half-duplex request/response with asynchronous status
// interleaving: at most one command is outstanding per physical controller,
// while unsolicited "ES" event/status reports may arrive between a command
// and its reply and are routed to the addressed axis without disturbing the
// pending request.
//
// A Controller owns exactly one transport. Axes under the same controller
// share the channel and are implicitly serialized; a second request while
// one is outstanding fails fast with ErrBusy instead of queueing. Two
// controllers on distinct transports can be driven fully in parallel.
//
// Basic usage:
//
//	tr, err := transport.DialTCP("10.0.0.20:5000")
//	if err != nil { ... }
//
//	ctrl, err := mcs.NewController(tr)
//	if err != nil { ... }
//	defer ctrl.Close()
//
//	if err := ctrl.Connect(); err != nil { ... }
//	if err := ctrl.Discover(); err != nil { ... }
//
//	axis, err := ctrl.Axis(0)
//	if err != nil { ... }
//
//	err = axis.Calibrate()
//	...
package mcs
