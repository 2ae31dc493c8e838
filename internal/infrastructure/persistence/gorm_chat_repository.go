package persistence

import (
	"context"
	"fmt"

	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormChatRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormChatRepository creates a new GORM-based ChatRepository implementation
func NewGormChatRepository(db *gorm.DB, logger logger.Logger) (chats.ChatRepository, error) {
	return &gormChatRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormChatRepository) Create(ctx context.Context, chat *chats.Chat) error {
	if err := chat.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	chatModel := &models.ChatModel{}
	chatModel.FromDomain(chat)

	memberModels := make([]*models.ChatMemberModel, len(chat.Members))
	for i, member := range chat.Members {
		memberModels[i] = &models.ChatMemberModel{}
		memberModels[i].FromDomain(member)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chatModel).Error; err != nil {
			return err
		}
		if len(memberModels) == 0 {
			return nil
		}
		return tx.Create(&memberModels).Error
	})
	if err != nil {
		return translateError(err, "chat")
	}

	r.logger.Info("Created chat with id ", chat.ID)
	return nil
}

func (r *gormChatRepository) GetByID(ctx context.Context, chatID string) (*chats.Chat, error) {
	var model models.ChatModel
	if err := r.db.WithContext(ctx).Where("id = ?", chatID).First(&model).Error; err != nil {
		return nil, translateError(err, "chat "+chatID)
	}

	chat := model.ToDomain()
	members, err := r.members(ctx, chatID)
	if err != nil {
		return nil, err
	}
	chat.Members = members
	return chat, nil
}

func (r *gormChatRepository) members(ctx context.Context, chatID string) ([]*chats.ChatMember, error) {
	var memberModels []*models.ChatMemberModel
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("date_time_joined asc").
		Find(&memberModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat members: %w", err)
	}

	members := make([]*chats.ChatMember, len(memberModels))
	for i, m := range memberModels {
		members[i] = m.ToDomain()
	}
	return members, nil
}

func (r *gormChatRepository) ListByMember(ctx context.Context, userID string) ([]*chats.Chat, error) {
	var modelList []*models.ChatModel
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.ChatMemberModel{}).Select("chat_id").Where("user_id = ?", userID)).
		Order("date_time_created desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}

	domainList := make([]*chats.Chat, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormChatRepository) FindDirect(ctx context.Context, userA, userB string) (*chats.Chat, error) {
	var model models.ChatModel
	err := r.db.WithContext(ctx).
		Where("direct_key = ?", chats.DirectKey(userA, userB)).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "direct chat")
	}
	return r.GetByID(ctx, model.ID)
}

func (r *gormChatRepository) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChatMemberModel{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check chat membership: %w", err)
	}
	return count > 0, nil
}

func (r *gormChatRepository) AddMember(ctx context.Context, member *chats.ChatMember) error {
	model := &models.ChatMemberModel{}
	model.FromDomain(member)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "chat member")
	}

	r.logger.Info("Added user ", member.UserID, " to chat ", member.ChatID)
	return nil
}

func (r *gormChatRepository) RemoveMember(ctx context.Context, chatID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&models.ChatMemberModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove chat member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "chat member")
	}

	r.logger.Info("Removed user ", userID, " from chat ", chatID)
	return nil
}

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (chats.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *chats.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "message")
	}
	return nil
}

func (r *gormMessageRepository) GetByID(ctx context.Context, messageID string) (*chats.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&model).Error; err != nil {
		return nil, translateError(err, "message "+messageID)
	}
	return model.ToDomain(), nil
}

func (r *gormMessageRepository) List(ctx context.Context, chatID string, query *chats.MessageQuery) ([]*chats.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Where("chat_id = ?", chatID)
	if query.Before != nil {
		dbQuery = dbQuery.Where("date_time_created < ?", query.Before.UTC())
	}

	var modelList []*models.MessageModel
	err := dbQuery.
		Order("date_time_created desc").
		Order("id desc").
		Limit(query.Limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	domainList := make([]*chats.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormMessageRepository) UpdateByID(ctx context.Context, message *chats.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return updateColumns(r.db.WithContext(ctx), &models.MessageModel{}, message.ID, "message "+message.ID, map[string]interface{}{
		"body":             message.Body,
		"date_time_edited": message.DateTimeEdited,
	})
}

func (r *gormMessageRepository) DeleteByID(ctx context.Context, messageID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", messageID).Delete(&models.MessageModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "message "+messageID)
	}
	return nil
}
