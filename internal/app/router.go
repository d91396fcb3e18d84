// internal/app/router.go
package app

import (
	"context"
	"errors"
	"html"
	"strings"

	"weather_notification_bot/internal/domain/chat"
	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/location"
	"weather_notification_bot/internal/domain/preference"
	"weather_notification_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// SessionStore holds each user's selected location.
type SessionStore interface {
	Location(userID int64) (string, bool)
	SetLocation(userID int64, location string)
}

// TextEvent is a free-text message from a user.
type TextEvent struct {
	UserID    int64
	FirstName string
	Text      string
}

// CallbackResult is the outcome of a callback: replies to send and the
// short notice used to acknowledge (dismiss) the pressed control.
type CallbackResult struct {
	Replies []chat.Reply
	Notice  string
}

// RouterOptions carries static texts that come from configuration.
type RouterOptions struct {
	ContactUsername string
	BotLink         string
}

// Router decides which replies an inbound event produces.
// Per-user state is derived from the session store and the event itself:
// no location selected, region list opened, or location ready.
type Router struct {
	sessions  SessionStore
	prefs     preference.Repository
	forecasts ReportSource
	catalog   *location.Catalog
	opts      RouterOptions
	logger    *logrus.Entry
	metrics   *metrics.Recorder
}

func NewRouter(
	sessions SessionStore,
	prefs preference.Repository,
	forecasts ReportSource,
	catalog *location.Catalog,
	opts RouterOptions,
	logger *logrus.Entry,
	recorder *metrics.Recorder,
) *Router {
	return &Router{
		sessions:  sessions,
		prefs:     prefs,
		forecasts: forecasts,
		catalog:   catalog,
		opts:      opts,
		logger:    logger,
		metrics:   recorder,
	}
}

// HandleText routes a free-text message by exact match against menu labels,
// region/district button labels and the /start and /help commands.
func (r *Router) HandleText(ctx context.Context, ev TextEvent) []chat.Reply {
	r.metrics.Event("text")
	text := strings.TrimSpace(ev.Text)
	logCtx := r.logger.WithFields(logrus.Fields{"user_id": ev.UserID, "text": text})
	logCtx.Debug("Text event received")

	switch {
	case text == "/start" || strings.HasPrefix(text, "/start "):
		return []chat.Reply{{Text: greetingText(ev.FirstName), HTML: true, Keyboard: mainKeyboard()}}
	case text == "/help" || text == LabelHelp:
		return []chat.Reply{{Text: helpText, HTML: true}}
	case text == LabelRegions:
		return []chat.Reply{r.regionPicker(textPickRegion)}
	case text == LabelBack:
		return []chat.Reply{{Text: textMainMenu, Keyboard: mainKeyboard()}}
	case text == LabelContact:
		return []chat.Reply{{Text: contactText(r.opts.ContactUsername, r.opts.BotLink), HTML: true, Keyboard: mainKeyboard()}}
	case text == LabelCheckWeather:
		loc, ok := r.sessions.Location(ev.UserID)
		if !ok {
			return []chat.Reply{r.regionPicker(textPickLocationFirst)}
		}
		return []chat.Reply{r.report(ctx, ev.UserID, loc, forecast.KindCurrent)}
	case text == LabelChooseTime:
		loc, ok := r.sessions.Location(ev.UserID)
		if !ok {
			return []chat.Reply{r.regionPicker(textPickLocationFirst)}
		}
		return []chat.Reply{{
			Text:     "<b>" + html.EscapeString(loc) + "</b> uchun qaysi vaqt oralig'idagi ob-havo ma'lumotini ko'rmoqchisiz?",
			HTML:     true,
			Keyboard: forecastPickerKeyboard(loc),
		}}
	case text == LabelNotifications:
		return r.toggleNotifications(ctx, ev.UserID, logCtx)
	case strings.HasPrefix(text, regionPrefix):
		region := strings.TrimPrefix(text, regionPrefix)
		districts, ok := r.catalog.Districts(region)
		if !ok {
			return []chat.Reply{r.regionPicker(textPickRegion)}
		}
		return []chat.Reply{{Text: html.EscapeString(region) + " tumanlari:", Keyboard: districtsKeyboard(districts)}}
	case strings.HasPrefix(text, districtPrefix):
		return r.selectDistrict(ctx, ev.UserID, strings.TrimPrefix(text, districtPrefix), logCtx)
	default:
		return []chat.Reply{{Text: textUseMenu, Keyboard: mainKeyboard()}}
	}
}

// selectDistrict accepts a district only if the catalog lists it under some region,
// then answers with the current report right away.
func (r *Router) selectDistrict(ctx context.Context, userID int64, district string, logCtx *logrus.Entry) []chat.Reply {
	if !r.catalog.IsDistrict(district) {
		logCtx.Info("Rejected unknown district")
		return []chat.Reply{r.regionPicker(textInvalidDistrict)}
	}

	r.sessions.SetLocation(userID, district)
	logCtx.WithField("location", district).Info("Location selected")

	return []chat.Reply{
		{Text: selectionText(district), HTML: true, Keyboard: mainKeyboard()},
		r.report(ctx, userID, district, forecast.KindCurrent),
	}
}

// toggleNotifications turns enabled notifications off in one step, or opens the
// hour picker when they are off.
func (r *Router) toggleNotifications(ctx context.Context, userID int64, logCtx *logrus.Entry) []chat.Reply {
	if _, ok := r.sessions.Location(userID); !ok {
		return []chat.Reply{r.regionPicker(textPickLocationFirst)}
	}

	pref, err := r.prefs.Get(ctx, userID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load notification preference")
		return []chat.Reply{{Text: textGenericFailure, Keyboard: mainKeyboard()}}
	}
	if !pref.Enabled {
		return []chat.Reply{{Text: textPickHour, Keyboard: hourPickerKeyboard()}}
	}

	if _, err := r.prefs.SetEnabled(ctx, userID, false); err != nil {
		logCtx.WithError(err).Error("Failed to disable notifications")
		return []chat.Reply{{Text: textGenericFailure, Keyboard: mainKeyboard()}}
	}
	logCtx.Info("Notifications disabled")
	return []chat.Reply{{Text: textNotifDisabled, Keyboard: mainKeyboard()}}
}

// HandleCallback decodes an inline button payload and dispatches it. Malformed or
// unknown payloads are acknowledged and otherwise ignored.
func (r *Router) HandleCallback(ctx context.Context, userID int64, data string) CallbackResult {
	r.metrics.Event("callback")
	logCtx := r.logger.WithFields(logrus.Fields{"user_id": userID, "callback": data})

	action, err := ParseCallback(data)
	if err != nil {
		logCtx.WithError(err).Warn("Ignoring unrecognized callback")
		return CallbackResult{Notice: textUnknownAction}
	}

	switch a := action.(type) {
	case ForecastAction:
		return r.forecastCallback(ctx, userID, a.Location, a.Kind, logCtx)
	case UpdateAction:
		return r.forecastCallback(ctx, userID, a.Location, a.Kind, logCtx)
	case NotifTimeAction:
		return r.notifTimeCallback(ctx, userID, a, logCtx)
	default:
		logCtx.Warn("Unhandled callback action")
		return CallbackResult{Notice: textUnknownAction}
	}
}

func (r *Router) forecastCallback(ctx context.Context, userID int64, loc string, kind forecast.Kind, logCtx *logrus.Entry) CallbackResult {
	if _, ok := r.sessions.Location(userID); !ok {
		return CallbackResult{Replies: []chat.Reply{r.regionPicker(textPickLocationFirst)}}
	}
	if !r.catalog.IsDistrict(loc) {
		logCtx.Warn("Callback carries a location outside the catalog")
		return CallbackResult{Notice: textUnknownAction}
	}
	return CallbackResult{Replies: []chat.Reply{r.report(ctx, userID, loc, kind)}}
}

func (r *Router) notifTimeCallback(ctx context.Context, userID int64, a NotifTimeAction, logCtx *logrus.Entry) CallbackResult {
	if a.Cancel {
		return CallbackResult{Replies: []chat.Reply{{Text: textNotifCancelled, Keyboard: mainKeyboard()}}}
	}
	if _, ok := r.sessions.Location(userID); !ok {
		return CallbackResult{Replies: []chat.Reply{r.regionPicker(textPickLocationFirst)}}
	}

	ok, err := r.prefs.SetHourAndEnable(ctx, userID, a.Hour)
	if err != nil {
		logCtx.WithError(err).Error("Failed to enable notifications")
		return CallbackResult{Replies: []chat.Reply{{Text: textGenericFailure, Keyboard: mainKeyboard()}}}
	}
	if !ok {
		logCtx.Info("Notification enable rejected: no lookup history")
		return CallbackResult{Replies: []chat.Reply{{Text: textNoLookupHistory, Keyboard: mainKeyboard()}}}
	}

	logCtx.WithField("hour", a.Hour).Info("Notifications enabled")
	return CallbackResult{Replies: []chat.Reply{{Text: notifEnabledText(a.Hour), Keyboard: mainKeyboard()}}}
}

func (r *Router) regionPicker(prompt string) chat.Reply {
	return chat.Reply{Text: prompt, Keyboard: regionsKeyboard(r.catalog)}
}

// report renders a forecast, or the "try again later" reply on provider failure.
func (r *Router) report(ctx context.Context, userID int64, loc string, kind forecast.Kind) chat.Reply {
	rep, err := r.forecasts.GetReport(ctx, userID, loc, kind)
	if err != nil {
		if !forecast.IsUnavailable(err) && !errors.Is(err, context.Canceled) {
			r.logger.WithError(err).WithField("user_id", userID).Error("Unexpected forecast error")
		}
		return chat.Reply{Text: textUnavailable}
	}
	return renderReport(rep)
}
