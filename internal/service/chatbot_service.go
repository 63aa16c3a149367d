package service

import (
	"context"

	"support-chatbot-be/internal/dto"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/replicated"
	"support-chatbot-be/pkg/events"
	"support-chatbot-be/pkg/rag/prompt"
	"support-chatbot-be/pkg/rag/response"
	"support-chatbot-be/pkg/rag/retrieval"
)

// IChatbotService answers one user message: retrieve, compose, complete, persist.
type IChatbotService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatbotService struct {
	retriever retrieval.Retriever
	composer  *prompt.Composer
	generator *response.Generator
	store     *replicated.Store
	publisher IPublisherService
	logger    logger.ILogger
}

// NewChatbotService builds the chat flow. A nil store disables persistence and a nil
// publisher disables events.
func NewChatbotService(
	retriever retrieval.Retriever,
	composer *prompt.Composer,
	generator *response.Generator,
	store *replicated.Store,
	publisher IPublisherService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		retriever: retriever,
		composer:  composer,
		generator: generator,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (c *chatbotService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	history := request.History()

	docs := c.retriever.Retrieve(ctx, request.Message)
	c.logger.Info("CHATBOT", "Retrieved grounding documents", map[string]interface{}{
		"count":      len(docs),
		"session_id": request.SessionId,
	})

	messages := c.composer.Compose(request.Message, toLLMHistory(history), docs)
	reply := c.generator.Complete(ctx, messages)

	if request.SessionId != "" && c.store != nil {
		c.persist(ctx, request, history, reply, docs)
	}

	if docs == nil {
		docs = []retrieval.Document{}
	}
	return &dto.ChatResponse{
		Response:      reply,
		ProductsFound: docs,
	}, nil
}

// persist never fails the chat; the reply has already been produced.
func (c *chatbotService) persist(ctx context.Context, request *dto.ChatRequest, history []dto.ConversationTurnDTO, reply string, docs []retrieval.Document) {
	turns := toTurns(history)
	message, err := c.store.AppendMessage(ctx, request.SessionId, request.Message, reply, turns)
	if err != nil {
		c.logger.Error("CHATBOT", "Failed to persist chat exchange", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
		return
	}

	if c.publisher == nil {
		return
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	c.publisher.Publish(ctx, events.New(events.ChatExchangeRecorded, map[string]interface{}{
		"session_id":   message.SessionId,
		"message_id":   message.MessageId,
		"user_message": message.UserMessage,
		"bot_response": message.BotResponse,
		"document_ids": ids,
	}, message.Timestamp))
}
