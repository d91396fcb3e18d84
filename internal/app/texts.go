// internal/app/texts.go
package app

import (
	"fmt"
	"html"
	"strings"
	"time"

	"weather_notification_bot/internal/domain/chat"
	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/location"
)

// Menu labels. Free text is routed by exact match against these.
const (
	LabelRegions       = "🏠 Viloyatlar"
	LabelCheckWeather  = "🌤 Ob-havo tekshirish"
	LabelChooseTime    = "📅 Vaqt tanlash"
	LabelNotifications = "🔔 Bildirishnoma"
	LabelContact       = "📞 Aloqa"
	LabelHelp          = "ℹ️ Yordam"
	LabelBack          = "🔙 Orqaga"

	regionPrefix   = "🏠 "
	districtPrefix = "🏘 "
)

const (
	textPickLocationFirst = "Iltimos, avval viloyat va tumanni tanlang!"
	textPickRegion        = "Viloyatni tanlang:"
	textInvalidDistrict   = "Iltimos, ob-havo ma'lumotlarini olish uchun ro'yxatdan tumanlardan birini tanlang."
	textUseMenu           = "Iltimos, ob-havo ma'lumotlarini olish uchun quyidagi tugmalardan foydalaning:"
	textMainMenu          = "Asosiy menyu:"
	textUnavailable       = "Kechirasiz, ob-havo ma'lumotlarini olishda xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring."
	textGenericFailure    = "Kechirasiz, so'rovni bajarishda xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring."
	textPickHour          = "Har kuni ob-havo ma'lumotini qaysi soatda olishni xohlaysiz?"
	textNotifCancelled    = "Bildirishnoma sozlash bekor qilindi."
	textNotifDisabled     = "🔕 Kunlik bildirishnomalar o'chirildi."
	textNoLookupHistory   = "Bildirishnomani yoqish uchun avval kamida bir marta ob-havo ma'lumotini oling."
	textScheduledHeader   = "⏰ Kunlik ob-havo ma'lumoti"
	textUnknownAction     = "Noma'lum amal."
	textCancelButton      = "❌ Bekor qilish"
)

var weekdaysUz = [...]string{"Yakshanba", "Dushanba", "Seshanba", "Chorshanba", "Payshanba", "Juma", "Shanba"}

var monthsUz = [...]string{"Yanvar", "Fevral", "Mart", "Aprel", "May", "Iyun", "Iyul", "Avgust", "Sentabr", "Oktabr", "Noyabr", "Dekabr"}

func dayLabel(t time.Time) string {
	return fmt.Sprintf("%s, %02d-%s", weekdaysUz[t.Weekday()], t.Day(), monthsUz[t.Month()-1])
}

func mainKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]chat.Button{
		{{Text: LabelRegions}, {Text: LabelCheckWeather}},
		{{Text: LabelChooseTime}},
		{{Text: LabelNotifications}},
		{{Text: LabelContact}, {Text: LabelHelp}},
	}}
}

func regionsKeyboard(c *location.Catalog) *chat.Keyboard {
	names := c.RegionNames()
	labels := make([]string, 0, len(names))
	for _, n := range names {
		labels = append(labels, regionPrefix+n)
	}
	return chat.ReplyKeyboard(2, labels...)
}

func districtsKeyboard(districts []string) *chat.Keyboard {
	labels := make([]string, 0, len(districts)+1)
	for _, d := range districts {
		labels = append(labels, districtPrefix+d)
	}
	labels = append(labels, LabelBack)
	return chat.ReplyKeyboard(2, labels...)
}

func forecastPickerKeyboard(loc string) *chat.Keyboard {
	return chat.InlineKeyboard(
		[]chat.Button{
			{Text: "🕒 Hozirgi", Data: ForecastAction{Kind: forecast.KindCurrent, Location: loc}.Encode()},
			{Text: "⏱ Soatlik", Data: ForecastAction{Kind: forecast.KindHourly, Location: loc}.Encode()},
		},
		[]chat.Button{
			{Text: "📅 Haftalik", Data: ForecastAction{Kind: forecast.KindWeekly, Location: loc}.Encode()},
		},
	)
}

func hourPickerKeyboard() *chat.Keyboard {
	kb := &chat.Keyboard{Inline: true}
	var row []chat.Button
	for h := 0; h < 24; h++ {
		row = append(row, chat.Button{Text: fmt.Sprintf("%02d:00", h), Data: NotifTimeAction{Hour: h}.Encode()})
		if len(row) == 4 {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	kb.Rows = append(kb.Rows, []chat.Button{{Text: textCancelButton, Data: NotifTimeAction{Cancel: true}.Encode()}})
	return kb
}

func greetingText(firstName string) string {
	return fmt.Sprintf("Assalomu alaykum, %s! 🌤️\n"+
		"Men ob-havo ma'lumotlarini beruvchi botman.\n"+
		"Ob-havo ma'lumotlarini olish uchun quyidagi tugmalardan foydalaning:\n\n"+
		"1. %s - Viloyat va tumanini tanlash\n"+
		"2. %s - Tanlangan hudud uchun ob-havo\n"+
		"3. %s - Turli vaqt uchun ob-havo\n"+
		"4. %s - Har kuni tanlangan soatda ob-havo",
		html.EscapeString(firstName), LabelRegions, LabelCheckWeather, LabelChooseTime, LabelNotifications)
}

const helpText = "Bot dan foydalanish bo'yicha yordam:\n\n" +
	"1. 🏠 <b>Viloyatlar</b> - Viloyat va tumanini tanlash\n" +
	"2. 🌤 <b>Ob-havo tekshirish</b> - Tanlangan hudud uchun ob-havo ma'lumoti\n" +
	"3. 📅 <b>Vaqt tanlash</b> - Turli vaqt oralig'i uchun ob-havo\n" +
	"4. 🔔 <b>Bildirishnoma</b> - Har kuni tanlangan soatda ob-havo ma'lumotini olish yoki o'chirish\n\n" +
	"<i>Eslatma: Ob-havo ma'lumotlarini olish uchun avval viloyat va tumanni tanlash kerak!</i>"

func contactText(username, botLink string) string {
	var b strings.Builder
	b.WriteString("😊 Assalomu alaykum! 🤖 Men bilan bog'lanishni xohlaysizmi?\n")
	b.WriteString("👏 Fikr-mulohazalaringiz, takliflaringiz yoki savollar bilan bemalol murojaat qiling!\n")
	if username != "" {
		fmt.Fprintf(&b, "\n📩 Telegram orqali: @%s\n", html.EscapeString(username))
	}
	if botLink != "" {
		fmt.Fprintf(&b, "\n👉 <a href='%s'>Ob-havo</a>", html.EscapeString(botLink))
	}
	return b.String()
}

func selectionText(district string) string {
	return fmt.Sprintf("Sizning tanlovingiz: <b>%s</b>", html.EscapeString(district))
}

func notifEnabledText(hour int) string {
	return fmt.Sprintf("✅ Bildirishnoma yoqildi. Har kuni soat %02d:00 da ob-havo ma'lumoti yuboriladi.", hour)
}

func conditionEmoji(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "thunder"):
		return "⛈"
	case strings.Contains(t, "snow"), strings.Contains(t, "sleet"), strings.Contains(t, "blizzard"), strings.Contains(t, "ice"):
		return "❄️"
	case strings.Contains(t, "rain"), strings.Contains(t, "drizzle"), strings.Contains(t, "shower"):
		return "🌧"
	case strings.Contains(t, "fog"), strings.Contains(t, "mist"):
		return "🌫"
	case strings.Contains(t, "overcast"):
		return "☁️"
	case strings.Contains(t, "cloud"):
		return "⛅️"
	case strings.Contains(t, "sunny"), strings.Contains(t, "clear"):
		return "☀️"
	default:
		return "🌡"
	}
}

// renderReport turns a report into an HTML reply with refresh buttons.
func renderReport(r *forecast.Report) chat.Reply {
	loc := html.EscapeString(r.Location)
	var lines []string

	switch r.Kind {
	case forecast.KindHourly:
		lines = append(lines, fmt.Sprintf("🕒 24 soatlik ob-havo\n📍 %s\n", loc), "🔹 Hozirdan boshlab 24 soat")
		for _, h := range nextHours(r, 24) {
			lines = append(lines, fmt.Sprintf("%s — %s %.1f°, %s",
				h.Time.Format("15:04"), conditionEmoji(h.Condition), h.TempC, html.EscapeString(h.Condition)))
		}
	case forecast.KindWeekly:
		lines = append(lines, fmt.Sprintf("📅 Haftalik ob-havo\n📍 %s", loc))
		for _, d := range r.Days {
			lines = append(lines, fmt.Sprintf("\n%s\n%s %+.0f° ... %+.0f°  %s\nYog'ingarchilik ehtimoli: %d%%",
				dayLabel(d.Date), conditionEmoji(d.Condition), d.MaxTempC, d.MinTempC, html.EscapeString(d.Condition), d.ChanceOfRain))
		}
	default:
		c := r.Current
		lines = append(lines,
			"📅 Bugun, "+dayLabel(r.GeneratedAt),
			fmt.Sprintf("📍 %s\n", loc),
			"🌡 Hozirgi ob-havo:",
			fmt.Sprintf("%s %s", conditionEmoji(c.Text), html.EscapeString(c.Text)),
			fmt.Sprintf("Harorat: %.1f°C", c.TempC),
			fmt.Sprintf("His etilishi: %.1f°C", c.FeelsLikeC),
			"———",
			fmt.Sprintf("Bulutlilik: %d%%", c.Cloud),
			fmt.Sprintf("Namlik: %d%%", c.Humidity),
			fmt.Sprintf("Shamol: %.1f km/soat", c.WindKph),
			fmt.Sprintf("Bosim: %.0f mbar", c.PressureMb),
		)
		if r.Astro != nil {
			lines = append(lines,
				"Quyosh chiqishi: "+html.EscapeString(r.Astro.Sunrise),
				"Quyosh botishi: "+html.EscapeString(r.Astro.Sunset),
			)
		}
	}
	lines = append(lines, "\n♻️ So'nggi yangilanish: "+r.GeneratedAt.Format("15:04"))

	return chat.Reply{Text: strings.Join(lines, "\n"), HTML: true, Keyboard: refreshKeyboard(r.Kind, r.Location)}
}

// nextHours returns up to n hourly slots starting at the current local hour.
func nextHours(r *forecast.Report, n int) []forecast.Hour {
	g := r.GeneratedAt
	start := time.Date(g.Year(), g.Month(), g.Day(), g.Hour(), 0, 0, 0, g.Location())
	var out []forecast.Hour
	for _, d := range r.Days {
		for _, h := range d.Hours {
			if h.Time.Before(start) {
				continue
			}
			out = append(out, h)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

func refreshKeyboard(kind forecast.Kind, loc string) *chat.Keyboard {
	refresh := chat.Button{Text: "🔄 Yangilash", Data: UpdateAction{Kind: kind, Location: loc}.Encode()}
	current := chat.Button{Text: "🌡 Hozirgi ob-havo", Data: UpdateAction{Kind: forecast.KindCurrent, Location: loc}.Encode()}
	if kind == forecast.KindCurrent {
		return chat.InlineKeyboard([]chat.Button{
			refresh,
			{Text: "📅 Haftalik", Data: UpdateAction{Kind: forecast.KindWeekly, Location: loc}.Encode()},
			{Text: "🕒 Soatlik", Data: UpdateAction{Kind: forecast.KindHourly, Location: loc}.Encode()},
		})
	}
	return chat.InlineKeyboard([]chat.Button{refresh, current})
}
