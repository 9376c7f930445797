package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

func (that *Server) handleClick(ctx context.Context, gameID string, message *Message) (*Message, error) {
	var payload clickPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil || payload.X == nil || payload.Y == nil {
		return nil, apperror.ErrInvalidPayload
	}

	result, _, err := that.manager.Click(ctx, gameID, *payload.X, *payload.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to click: %w", err)
	}

	return illegalReply(result)
}

func (that *Server) handleMove(ctx context.Context, gameID string, message *Message) (*Message, error) {
	var payload movePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil || payload.Row == nil || payload.Col == nil {
		return nil, apperror.ErrInvalidPayload
	}

	result, _, err := that.manager.Move(ctx, gameID, *payload.Row, *payload.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to move: %w", err)
	}

	return illegalReply(result)
}

func (that *Server) handleReset(ctx context.Context, gameID string, _ *Message) (*Message, error) {
	if _, err := that.manager.Reset(ctx, gameID); err != nil {
		return nil, fmt.Errorf("failed to reset: %w", err)
	}

	return nil, nil
}

// illegalReply - accepted moves are answered by the feed; only a rejection needs a reply.
func illegalReply(result gomoku.MoveResult) (*Message, error) {
	if result.Outcome != gomoku.OutcomeIllegal {
		return nil, nil
	}

	payload := illegalPayload{Result: result}
	if result.Reason != nil {
		payload.Reason = result.Reason.Error()
	}

	message, err := newMessage(actionIllegal, payload)
	if err != nil {
		return nil, err
	}

	return &message, nil
}
