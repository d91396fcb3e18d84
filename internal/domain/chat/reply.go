// internal/domain/chat/reply.go
package chat

// Button is a selectable action. Reply-keyboard buttons re-send Text as a
// message; inline buttons carry Data back as a callback payload.
type Button struct {
	Text string
	Data string
}

// Keyboard is a button layout attached to a reply.
type Keyboard struct {
	Inline bool
	Rows   [][]Button
}

// Reply is one outbound message.
type Reply struct {
	Text     string
	HTML     bool
	Keyboard *Keyboard
}

// ReplyKeyboard lays out text buttons perRow per row.
func ReplyKeyboard(perRow int, labels ...string) *Keyboard {
	kb := &Keyboard{}
	var row []Button
	for _, l := range labels {
		row = append(row, Button{Text: l})
		if len(row) == perRow {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Rows = append(kb.Rows, row)
	}
	return kb
}

// InlineKeyboard builds an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Inline: true, Rows: rows}
}
