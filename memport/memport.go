// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

package memport

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/gophernes/logger"
)

// Memory is the interface to the CPU address space used when draining the
// queue.
type Memory interface {
	Peek(address uint16) uint8
	Poke(address uint16, data uint8)
}

// List of valid Request.Op values.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// MaxLen is the largest number of bytes that can be read or written by a
// single request.
const MaxLen = 0x1000

// Sentinel errors returned by Submit().
var (
	ErrOp      = errors.New("memport: unrecognised operation")
	ErrLength  = errors.New("memport: invalid length")
	ErrTimeout = errors.New("memport: request timed out")
)

// Request is a single memory operation.
type Request struct {
	Op   string `json:"op"`
	Addr uint16 `json:"addr"`
	Len  int    `json:"len,omitempty"`
	Data []int  `json:"data,omitempty"`
}

func (req Request) String() string {
	switch req.Op {
	case OpWrite:
		return fmt.Sprintf("%s %04x %d bytes", req.Op, req.Addr, len(req.Data))
	}
	return fmt.Sprintf("%s %04x %d bytes", req.Op, req.Addr, req.Len)
}

func (req Request) validate() error {
	switch req.Op {
	case OpRead:
		if req.Len <= 0 || req.Len > MaxLen {
			return fmt.Errorf("%w: %d", ErrLength, req.Len)
		}
	case OpWrite:
		if len(req.Data) == 0 || len(req.Data) > MaxLen {
			return fmt.Errorf("%w: %d", ErrLength, len(req.Data))
		}
		for _, d := range req.Data {
			if d < 0 || d > 0xff {
				return fmt.Errorf("memport: write value out of range: %d", d)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrOp, req.Op)
	}
	return nil
}

// Response is the result of a Request.
type Response struct {
	Addr uint16 `json:"addr"`
	Data []int  `json:"data,omitempty"`
	Err  string `json:"err,omitempty"`
}

type command struct {
	req   Request
	reply chan Response

	// set by whichever of Submit() or Drain() gives up on or takes the
	// command first. a command claimed by Submit() is never serviced
	claimed atomic.Bool
}

// Server queues requests until they are drained by the emulation.
type Server struct {
	perm  logger.Permission
	queue chan *command

	// how long a websocket request waits for the emulation to drain the
	// queue
	Timeout time.Duration
}

// queue length before Submit() blocks
const queueLen = 64

// NewServer is the preferred method of initialisation for the Server type.
func NewServer(perm logger.Permission) *Server {
	return &Server{
		perm:    perm,
		queue:   make(chan *command, queueLen),
		Timeout: time.Second,
	}
}

// Submit a request and wait for the response. The request will not complete
// until the emulation drains the queue or the context is done.
func (srv *Server) Submit(ctx context.Context, req Request) (Response, error) {
	if err := req.validate(); err != nil {
		return Response{Addr: req.Addr, Err: err.Error()}, err
	}

	cmd := &command{
		req:   req,
		reply: make(chan Response, 1),
	}

	timeout := func() (Response, error) {
		return Response{Addr: req.Addr, Err: ErrTimeout.Error()}, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}

	select {
	case srv.queue <- cmd:
	case <-ctx.Done():
		return timeout()
	}

	select {
	case resp := <-cmd.reply:
		return resp, nil
	case <-ctx.Done():
		if cmd.claimed.CompareAndSwap(false, true) {
			logger.Logf(srv.perm, "memport", "abandoned: %s", req)
			return timeout()
		}

		// the emulation has already taken the command. the reply will arrive
		// without waiting on the emulation again
		return <-cmd.reply, nil
	}
}

// Drain services every request in the queue. It does not block if the queue
// is empty. Must be called from the emulation goroutine.
func (srv *Server) Drain(mem Memory) {
	for {
		select {
		case cmd := <-srv.queue:
			if cmd.claimed.CompareAndSwap(false, true) {
				cmd.reply <- service(mem, cmd.req)
			}
		default:
			return
		}
	}
}

func service(mem Memory, req Request) Response {
	resp := Response{Addr: req.Addr}

	switch req.Op {
	case OpRead:
		resp.Data = make([]int, req.Len)
		for i := range resp.Data {
			resp.Data[i] = int(mem.Peek(req.Addr + uint16(i)))
		}
	case OpWrite:
		for i, d := range req.Data {
			mem.Poke(req.Addr+uint16(i), uint8(d))
		}
		resp.Data = req.Data
	}

	return resp
}
