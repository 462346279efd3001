/*
Package handler provides the HTTP handlers and routing setup for the room server.

This file contains the HandleWebSocket function, which is responsible for
rate limiting, capacity checking, upgrading the HTTP connection to
WebSocket, minting the session identity, and starting the client pumps.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"vibehotel/internal/app/room"
	"vibehotel/internal/pkg/errs"
	"vibehotel/internal/pkg/limiter"
	"vibehotel/internal/pkg/logx"
	"vibehotel/internal/pkg/randx"
	"vibehotel/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(r *room.Room, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, req, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		if r.IsFull() {
			logx.Info("WebSocket connection rejected: Room is full.")
			resp.RespondError(w, req, errs.NewError(errs.ErrRoomIsFull))
			return
		}

		sessionID, err := randx.SessionID()
		if err != nil {
			logx.Error(err, "Failed to generate session id")
			resp.RespondError(w, req, errs.NewError(errs.ErrUnknown))
			return
		}

		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := room.NewClient(r, conn, sessionID)

		go client.WritePump()

		logx.Info("WebSocket connection established", "session_id", sessionID)

		r.RegisterClient(client)

		client.ReadPump()
	}
}
