package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"weather_notification_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const textAdminUnauthorized = "Xatolik: Bu buyruqni bajarish uchun sizda ruxsat yo'q."

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, admin service, and the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/stats", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/stats",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if adminTelegramID == 0 || c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(textAdminUnauthorized)
		}

		stats, err := adminService.Stats(ctx, c.Sender().ID)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to collect stats")
			return c.Send(fmt.Sprintf("Statistikani olishda xatolik: %s", err.Error()))
		}

		return c.Send(fmt.Sprintf("📊 Faol sessiyalar: %d\n🔔 Yoqilgan bildirishnomalar: %d",
			stats.Sessions, stats.NotificationsEnabled))
	})

	b.Handle("/notify_now", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/notify_now",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if adminTelegramID == 0 || c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(textAdminUnauthorized)
		}

		args := c.Args() // c.Args() returns []string
		// Expected format: /notify_now <hour>
		if len(args) != 1 {
			handlerLogger.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Noto'g'ri format. Foydalaning: /notify_now <soat 0-23>")
		}

		hour, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Send("Xatolik: soat butun son bo'lishi kerak.")
		}
		handlerLogger = handlerLogger.WithField("hour", hour)

		stats, err := adminService.DeliverNow(ctx, c.Sender().ID, hour)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrAdminNotAuthorized):
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send(textAdminUnauthorized)
			case errors.Is(err, app.ErrInvalidHour):
				return c.Send("Xatolik: soat 0 dan 23 gacha bo'lishi kerak.")
			default:
				logWithError.Error("Manual delivery failed")
				return c.Send(fmt.Sprintf("Yuborishda xatolik: %s", err.Error()))
			}
		}

		handlerLogger.WithFields(logrus.Fields{
			"due":       stats.Due,
			"delivered": stats.Delivered,
			"failed":    stats.Failed,
		}).Info("Manual delivery finished")
		return c.Send(fmt.Sprintf("Soat %02d:00 uchun: %d ta foydalanuvchi, %d ta yuborildi, %d ta xatolik.",
			hour, stats.Due, stats.Delivered, stats.Failed))
	})
}
