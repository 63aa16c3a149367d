package service

import (
	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/entity"
	"support-chatbot-be/pkg/llm"
)

func toTurns(history []dto.ConversationTurnDTO) []entity.ConversationTurn {
	turns := make([]entity.ConversationTurn, 0, len(history))
	for _, h := range history {
		turns = append(turns, entity.ConversationTurn{Role: h.Role, Content: h.Content})
	}
	return turns
}

func toTurnDTOs(turns []entity.ConversationTurn) []dto.ConversationTurnDTO {
	out := make([]dto.ConversationTurnDTO, 0, len(turns))
	for _, t := range turns {
		out = append(out, dto.ConversationTurnDTO{Role: t.Role, Content: t.Content})
	}
	return out
}

func toLLMHistory(history []dto.ConversationTurnDTO) []llm.Message {
	msgs := make([]llm.Message, 0, len(history))
	for _, h := range history {
		msgs = append(msgs, llm.Message{Role: h.Role, Content: h.Content})
	}
	return msgs
}

// turnsPayload flattens turns for an event payload.
func turnsPayload(turns []entity.ConversationTurn) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(turns))
	for _, t := range turns {
		out = append(out, map[string]interface{}{"role": t.Role, "content": t.Content})
	}
	return out
}
