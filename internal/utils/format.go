package utils

import (
	"fmt"
	"html"
	"time"
)

// Weekday names in pt-BR, indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// Mood emoji for each weekday, appended after the day header.
var weekdayEmojis = [7]string{"😴", "😫", "🙂", "🐪", "🤓", "🎉", "😎"}

// Emoji for special calendar dates, keyed by "DD/MM".
var specialDayEmojis = map[string]string{
	"01/01": "🎆",
	"12/06": "❤️",
	"25/12": "🎄",
}

func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

func WeekdayEmoji(d time.Weekday) string {
	return weekdayEmojis[d]
}

// SpecialDayEmoji returns the emoji that opens a day header line. Most days
// get the default calendar emoji.
func SpecialDayEmoji(day, month int) string {
	if emoji, ok := specialDayEmojis[fmt.Sprintf("%02d/%02d", day, month)]; ok {
		return emoji
	}
	return "📅"
}

// UserEmoji marks an open (claimable) ride entry.
func UserEmoji(_ int64) string {
	return "🚘"
}

func AddZeroPadding(n int) string {
	return fmt.Sprintf("%02d", n)
}

func Bold(text string) string {
	return "<b>" + text + "</b>"
}

func StrikeThrough(text string) string {
	return "<s>" + text + "</s>"
}

// UserLink builds the clickable chat-user reference for an open ride.
func UserLink(id int64, firstName, lastName string) string {
	name := firstName
	if lastName != "" {
		name += " " + lastName
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, id, html.EscapeString(name))
}
