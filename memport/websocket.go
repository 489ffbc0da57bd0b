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
	"encoding/json"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/jetsetilly/gophernes/logger"
)

// Handler returns an http.Handler that upgrades the connection to a
// websocket and services requests until the connection is closed.
func (srv *Server) Handler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(req, rw)
		if err != nil {
			logger.Log(srv.perm, "memport", err)
			rw.WriteHeader(http.StatusBadRequest)
			return
		}
		logger.Logf(srv.perm, "memport", "connection from %s", req.RemoteAddr)
		go srv.serve(conn)
	})
}

func (srv *Server) serve(conn net.Conn) {
	defer conn.Close()

	for {
		msg, op, err := wsutil.ReadClientData(conn)
		if err != nil {
			logger.Log(srv.perm, "memport", err)
			return
		}

		switch op {
		case ws.OpClose:
			return
		case ws.OpText:
		default:
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(msg, &req); err != nil {
			resp.Err = err.Error()
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), srv.Timeout)
			resp, _ = srv.Submit(ctx, req)
			cancel()
		}

		b, err := json.Marshal(resp)
		if err != nil {
			logger.Log(srv.perm, "memport", err)
			return
		}

		if err := wsutil.WriteServerMessage(conn, ws.OpText, b); err != nil {
			logger.Log(srv.perm, "memport", err)
			return
		}
	}
}
