package validate

import (
	"cake_admin/constants"
	"cake_admin/model"
	"cake_admin/utils"

	"github.com/gofiber/fiber/v2"
)

func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SendMessageInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := SendMessageInput(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MESSAGE_INVALID_BODY, err)
		}
		c.Locals("messageInput", input)
		return c.Next()
	}
}

// SendMessageInput dùng chung cho REST và websocket
func SendMessageInput(input model.SendMessageInput) error {
	if err := validate.Struct(input); err != nil {
		return err
	}
	return model.ChatMessage{Message: input.Message, ImageURL: input.ImageURL}.Validate()
}
