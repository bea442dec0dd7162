package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type chatMsg struct {
	connId  string
	message string
}

type SendChatMessageParams struct {
	ConnId  string `json:"connId"`
	Message string `json:"message"`
}

func (s *service) SendChatMessage(ctx context.Context, params *SendChatMessageParams) error {
	params.Message = strings.TrimSpace(params.Message)
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.Message, ChatMessageRule...),
	); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, chatMsg{
		connId:  params.ConnId,
		message: escapeHTML(params.Message),
	})
}

func (a *roomActor) chat(_ context.Context, msg chatMsg, now time.Time) error {
	member, _, err := a.room.Members.GetById(msg.connId)
	if err != nil {
		return nil
	}

	a.broadcast(Output{
		Type: TypeChatMessage,
		Payload: ChatMessage{
			User:      member.Name,
			Message:   msg.message,
			Timestamp: now.UnixMilli(),
		},
	})
	a.commit(now)
	return nil
}
