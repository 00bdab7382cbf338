package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/session"
)

var (
	ErrNotConnected     = errors.New("player is not connected")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnknownAction    = errors.New("unknown action")
)

// clientErrors are reported to the client verbatim; anything else is hidden.
var clientErrors = []error{
	ErrNotConnected,
	ErrMalformedPayload,
	ErrUnknownAction,
	apperror.ErrNotFound,
	apperror.ErrGameFull,
	apperror.ErrExhausted,
	apperror.ErrNotCalled,
	apperror.ErrInvalidState,
	apperror.ErrInvalidCell,
	apperror.ErrPersistence,
	apperror.ErrDeserialization,
}

func errorMessage(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return payload, nil
}

func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	sessionID := conn.sessionID
	if payloadReq.Player != nil && payloadReq.Player.ID != "" {
		sessionID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	sess := session.New(that.logger, that.gameUseCase, player.ID)
	conn.attach(sess)

	if err = conn.send(msg.Action, Payload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log = log.With("playerID", player.ID)

	if player.GameID == "" {
		log.Info("player connected")
		return nil
	}

	if _, err = sess.Resume(ctx, player.GameID); err != nil {
		log.Info("previous game is not available", "gameID", player.GameID, "error", err)
		return nil
	}

	log.Info("player reconnected to game", "gameID", player.GameID)

	return that.watch(ctx, conn, sess)
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	sess := conn.currentSession()
	if sess == nil {
		return ErrNotConnected
	}

	view, err := sess.CreateGame(ctx)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, Payload{View: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return that.watch(ctx, conn, sess)
}

func (that *Server) handleJoinGame(ctx context.Context, conn *connection, msg *Message) error {
	sess := conn.currentSession()
	if sess == nil {
		return ErrNotConnected
	}

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return fmt.Errorf("%w: game id is required", ErrMalformedPayload)
	}

	view, err := sess.JoinGame(ctx, payloadReq.Game.ID)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, Payload{View: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return that.watch(ctx, conn, sess)
}

func (that *Server) handleCallNumber(ctx context.Context, conn *connection, msg *Message) error {
	sess := conn.currentSession()
	if sess == nil {
		return ErrNotConnected
	}

	view, number, err := sess.CallNumber(ctx)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, Payload{View: &view, Number: number}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleMarkCell(ctx context.Context, conn *connection, msg *Message) error {
	sess := conn.currentSession()
	if sess == nil {
		return ErrNotConnected
	}

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Cell == nil {
		return fmt.Errorf("%w: cell is required", ErrMalformedPayload)
	}

	view, err := sess.MarkCell(ctx, payloadReq.Cell.Row, payloadReq.Cell.Col)
	if err != nil {
		return err
	}

	if err = conn.send(msg.Action, Payload{View: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// watch pushes every snapshot of the session's game to the socket as game:state.
func (that *Server) watch(ctx context.Context, conn *connection, sess *session.Session) error {
	log := that.logger.With("method", "watch", "playerID", sess.PlayerID())

	err := sess.Watch(ctx, func(view session.View, err error) {
		if err != nil {
			log.Warn("game stream failed", "error", err)

			if sendErr := conn.sendError(actionGameState, errorMessage(err)); sendErr != nil {
				log.Debug("failed to push error", "error", sendErr)
			}

			return
		}

		if sendErr := conn.send(actionGameState, Payload{View: &view}); sendErr != nil {
			log.Debug("failed to push game state", "error", sendErr)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch game: %w", err)
	}

	return nil
}
