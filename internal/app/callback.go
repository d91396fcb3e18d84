// internal/app/callback.go
package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"weather_notification_bot/internal/domain/forecast"

	"github.com/go-playground/validator/v10"
)

// Callback namespaces carried in inline button payloads.
const (
	nsForecast      = "forecast"
	nsUpdateWeather = "update_weather"
	nsNotifTime     = "notif_time"

	cancelToken = "cancel"
)

var ErrMalformedCallback = errors.New("malformed callback payload")

var validate = validator.New()

// Action is a decoded callback payload.
type Action interface {
	Encode() string
}

// ForecastAction asks for a report from the forecast picker.
type ForecastAction struct {
	Kind     forecast.Kind `validate:"required,oneof=current hourly weekly"`
	Location string        `validate:"required,max=64"`
}

func (a ForecastAction) Encode() string {
	return nsForecast + ":" + string(a.Kind) + ":" + a.Location
}

// UpdateAction refreshes or switches a report from its inline buttons.
type UpdateAction struct {
	Kind     forecast.Kind `validate:"required,oneof=current hourly weekly"`
	Location string        `validate:"required,max=64"`
}

func (a UpdateAction) Encode() string {
	return nsUpdateWeather + ":" + string(a.Kind) + ":" + a.Location
}

// NotifTimeAction is a pick from the notification hour picker.
type NotifTimeAction struct {
	Hour   int `validate:"min=0,max=23"`
	Cancel bool
}

func (a NotifTimeAction) Encode() string {
	if a.Cancel {
		return nsNotifTime + ":" + cancelToken
	}
	return nsNotifTime + ":" + strconv.Itoa(a.Hour)
}

// ParseCallback decodes "<namespace>:<field>..." into a typed action.
// Unknown namespaces and invalid fields yield ErrMalformedCallback.
func ParseCallback(data string) (Action, error) {
	ns, rest, ok := strings.Cut(data, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedCallback, data)
	}

	var action Action
	switch ns {
	case nsForecast, nsUpdateWeather:
		kindStr, loc, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCallback, data)
		}
		kind, ok := forecast.ParseKind(kindStr)
		if !ok {
			return nil, fmt.Errorf("%w: unknown forecast kind %q", ErrMalformedCallback, kindStr)
		}
		if ns == nsForecast {
			action = ForecastAction{Kind: kind, Location: loc}
		} else {
			action = UpdateAction{Kind: kind, Location: loc}
		}
	case nsNotifTime:
		if rest == cancelToken {
			return NotifTimeAction{Cancel: true}, nil
		}
		hour, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: bad hour %q", ErrMalformedCallback, rest)
		}
		action = NotifTimeAction{Hour: hour}
	default:
		return nil, fmt.Errorf("%w: unknown namespace %q", ErrMalformedCallback, ns)
	}

	if err := validate.Struct(action); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCallback, err)
	}
	return action, nil
}
