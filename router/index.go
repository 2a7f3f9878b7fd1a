package router

import (
	"cake_admin/handler"
	"cake_admin/middleware"
	"cake_admin/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", validate.RefreshToken(), handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)

	bill := v1.Group("/bills", middleware.Protected())
	bill.Get("/", validate.FilterBill(), handler.GetBills)
	bill.Get("/:id", validate.BillId("id"), handler.GetBillById)
	bill.Put("/:id", validate.BillId("id"), validate.UpdateBillStatus(), handler.UpdateBillStatus)
	bill.Delete("/:id", middleware.AdminOnly(), validate.BillId("id"), handler.DeleteBill)

	message := v1.Group("/messages", middleware.Protected())
	message.Get("/conversations", handler.GetConversations)
	message.Post("/", validate.SendMessage(), handler.SendMessage)
	message.Post("/image", handler.UploadChatImage)
	message.Get("/:userId", handler.GetMessages)

	chat := v1.Group("/chat")
	chat.Get("/ws", middleware.Protected(), middleware.WebsocketUpgrade(), websocket.New(handler.ChatWebsocket))

	customer := v1.Group("/customers", middleware.Protected())
	customer.Get("/", handler.GetCustomers)
	customer.Get("/:customerId", handler.GetCustomerById)

	product := v1.Group("/products", middleware.Protected())
	product.Get("/", handler.GetProducts)
	product.Get("/:productId", validate.GetById("productId"), handler.GetProductById)
	product.Post("/", middleware.AdminOnly(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:productId", middleware.AdminOnly(), validate.EditProduct("productId"), handler.EditProduct)
	product.Post("/:productId/image", middleware.AdminOnly(), validate.GetById("productId"), handler.UploadProductImage)
	product.Delete("/", middleware.AdminOnly(), validate.Delete(), handler.DeleteProducts)

	voucher := v1.Group("/vouchers", middleware.Protected())
	voucher.Get("/", handler.GetVouchers)
	voucher.Get("/:voucherId", validate.GetById("voucherId"), handler.GetVoucherById)
	voucher.Post("/", middleware.AdminOnly(), validate.CreateVoucher(), handler.CreateVoucher)
	voucher.Put("/:voucherId", middleware.AdminOnly(), validate.EditVoucher("voucherId"), handler.EditVoucher)
	voucher.Delete("/", middleware.AdminOnly(), validate.Delete(), handler.DeleteVouchers)

	v1.Get("/statistic", middleware.Protected(), handler.GetAdminStats)
}
