package handler

import (
	"cake_admin/constants"
	"cake_admin/database"
	"cake_admin/helper"
	"cake_admin/model"
	"cake_admin/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const imagePreview = "[Hình ảnh]"

func chatChannel(userId string) string {
	return "chat:" + userId
}

type conversationRow struct {
	Peer      string
	Message   string
	ImageUrl  string
	Timestamp time.Time
}

// buildSummaries ghép tin cuối của mỗi khách với email, mới nhất lên đầu
func buildSummaries(rows []conversationRow, emails map[string]string) []model.ConversationSummary {
	list := make([]model.ConversationSummary, 0, len(rows))
	for _, r := range rows {
		last := r.Message
		if last == "" && r.ImageUrl != "" {
			last = imagePreview
		}
		list = append(list, model.ConversationSummary{
			UserID:      r.Peer,
			Email:       emails[r.Peer],
			LastMessage: last,
			UpdatedAt:   r.Timestamp,
		})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	return list
}

func GetConversations(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	if claim.ChatId == "" {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được cấp chatId", nil)
	}

	var rows []conversationRow
	err := database.DB.Raw(`
		SELECT DISTINCT ON (peer) peer, message, image_url, timestamp FROM (
			SELECT CASE WHEN sender_id = @me THEN receiver_id ELSE sender_id END AS peer,
				message, image_url, timestamp
			FROM chat_messages
			WHERE sender_id = @me OR receiver_id = @me
		) t
		ORDER BY peer, timestamp DESC`,
		map[string]any{"me": claim.ChatId},
	).Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MESSAGE_LOAD_FAILED, err)
	}

	peers := make([]string, 0, len(rows))
	for _, r := range rows {
		peers = append(peers, r.Peer)
	}
	emails, err := helper.CustomerEmails(peers)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MESSAGE_LOAD_FAILED, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, buildSummaries(rows, emails))
}

func GetMessages(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	userId := c.Params("userId")

	var messages model.ChatMessages
	err := database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			claim.ChatId, userId, userId, claim.ChatId).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MESSAGE_LOAD_FAILED, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, messages)
}

// saveMessage lưu tin nhắn do senderId gửi; id do server cấp
func saveMessage(senderId string, input model.SendMessageInput) (model.ChatMessage, error) {
	msg := model.ChatMessage{
		ID:         uuid.NewString(),
		ClientID:   input.ClientID,
		SenderID:   senderId,
		ReceiverID: input.ReceiverID,
		Message:    input.Message,
		ImageURL:   input.ImageURL,
		Timestamp:  time.Now(),
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

func receiveFrame(msg model.ChatMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(model.ChatFrame{Event: model.ChatEventReceive, Data: data})
}

// publishMessage đẩy tin nhắn tới cả hai phía qua Redis
func publishMessage(ctx context.Context, msg model.ChatMessage) {
	if database.Redis == nil {
		return
	}
	payload, err := receiveFrame(msg)
	if err != nil {
		log.Printf("Lỗi mã hóa tin nhắn %s: %v", msg.ID, err)
		return
	}
	for _, ch := range []string{chatChannel(msg.SenderID), chatChannel(msg.ReceiverID)} {
		if err := database.Redis.Publish(ctx, ch, payload).Err(); err != nil {
			log.Printf("Lỗi publish tin nhắn lên %s: %v", ch, err)
		}
	}
}

func SendMessage(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	input := c.Locals("messageInput").(model.SendMessageInput)

	msg, err := saveMessage(claim.ChatId, input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MESSAGE_SEND_FAILED, err)
	}
	publishMessage(c.Context(), msg)
	return utils.SuccessResponse(c, fiber.StatusCreated, msg)
}

// UploadChatImage POST /messages/image (multipart: file, receiverId, clientId)
func UploadChatImage(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	receiverId := c.FormValue("receiverId")
	if receiverId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, fmt.Errorf("receiverId is required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file ảnh", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không đọc được file ảnh", err)
	}
	defer file.Close()

	img, err := helper.UploadImage(c.Context(), "chat", uuid.NewString(), file)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tải ảnh thất bại", err)
	}

	msg, err := saveMessage(claim.ChatId, model.SendMessageInput{
		ClientID:   c.FormValue("clientId"),
		ReceiverID: receiverId,
		ImageURL:   img.URL,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MESSAGE_SEND_FAILED, err)
	}
	publishMessage(c.Context(), msg)
	return utils.SuccessResponse(c, fiber.StatusCreated, msg)
}
