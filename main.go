package main

import (
	"cake_admin/config"
	"cake_admin/console"
	"cake_admin/database"
	"cake_admin/helper"
	"cake_admin/router"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{Use: "cake_admin"}
	rootCmd.AddCommand(
		serveCommand(),
		seedCommand(),
		consoleCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "chạy admin API",
		Run: func(cmd *cobra.Command, args []string) {
			app := fiber.New(fiber.Config{
				BodyLimit: 20 * 1024 * 1024, // ảnh chat, ảnh sản phẩm
			})
			app.Use(cors.New(cors.Config{
				AllowOrigins:     config.ConfigDefault("CORS_ORIGINS", "http://localhost:5173"),
				AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
				AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
				AllowCredentials: true,
				ExposeHeaders:    "Set-Cookie",
				MaxAge:           600,
			}))

			database.ConnectDB()
			database.ConnectRedis()
			helper.InitBillEvents()
			defer helper.CloseBillEvents()

			helper.StartBillScheduler()
			defer helper.StopBillScheduler()
			helper.StartVoucherScheduler()
			defer helper.StopVoucherScheduler()

			router.SetupRoutes(app)

			addr := config.ConfigDefault("PORT", "8002")
			if !strings.Contains(addr, ":") {
				addr = ":" + addr
			}
			if err := app.Listen(addr); err != nil {
				log.Println("Server dừng:", err)
			}
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "tạo tài khoản admin và dữ liệu mẫu",
		Run: func(cmd *cobra.Command, args []string) {
			database.ConnectDB()
			database.SeedData(database.DB)
			log.Println("Seed xong")
		},
	}
}

// consoleCommand chạy lõi trang quản trị với API đang chạy: tải đơn, nối kênh chat, in danh sách hội thoại
func consoleCommand() *cobra.Command {
	var apiURL, wsURL, token, open string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "console",
		Short: "kiểm tra nhanh trang quản trị với API đang chạy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			session, err := console.NewSession(token)
			if err != nil {
				return err
			}
			client := console.NewClient(apiURL, session)
			logger := log.Default()

			bills := console.NewBillController(client, logger)
			if err := bills.Refresh(ctx); err != nil {
				return err
			}
			for _, b := range bills.Bills() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t-> %v\n",
					b.ID, b.Status, b.TotalAmount, bills.AllowedNextStates(b.Status))
			}

			var channel console.Channel
			ws, err := console.DialChannel(ctx, wsURL, session, session.ChatID, logger)
			if err != nil {
				log.Printf("Không nối được kênh chat, gửi tin sẽ dùng REST: %v", err)
			} else {
				channel = ws
			}

			chat := console.NewChatReconciler(client, channel, console.ChatOptions{
				AdminID: session.ChatID,
				Logger:  logger,
			})
			if err := chat.Start(); err != nil {
				return err
			}
			defer chat.Stop()

			if err := chat.RefreshConversations(ctx); err != nil {
				return err
			}
			for _, c := range chat.Conversations() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					c.UserID, c.Email, c.UpdatedAt.Format(time.DateTime), c.LastMessage)
			}

			if open != "" {
				if err := chat.SelectConversation(ctx, open); err != nil {
					return err
				}
				for _, m := range chat.Transcript() {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s%s\n",
						m.Timestamp.Format(time.TimeOnly), m.SenderID, m.Message, m.ImageURL)
				}
			}
			return nil
		},
	}

	port := strings.TrimPrefix(config.ConfigDefault("PORT", "8002"), ":")
	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:"+port+"/api/v1", "địa chỉ REST API")
	cmd.Flags().StringVar(&wsURL, "ws", "ws://localhost:"+port+"/api/v1/chat/ws", "địa chỉ websocket chat")
	cmd.Flags().StringVar(&token, "token", "", "access token của admin")
	cmd.Flags().StringVar(&open, "open", "", "id khách cần mở hội thoại")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "thời gian tối đa")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
