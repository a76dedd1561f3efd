package utils

import (
	"testing"
	"time"
)

func TestAddZeroPadding(t *testing.T) {
	if got := AddZeroPadding(5); got != "05" {
		t.Fatalf("expected 05, got %s", got)
	}
	if got := AddZeroPadding(12); got != "12" {
		t.Fatalf("expected 12, got %s", got)
	}
}

func TestStrikeThrough(t *testing.T) {
	if got := StrikeThrough("Maria"); got != "<s>Maria</s>" {
		t.Fatalf("unexpected markup: %s", got)
	}
}

func TestUserLink(t *testing.T) {
	got := UserLink(42, "João", "Souza")
	want := `<a href="tg://user?id=42">João Souza</a>`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUserLinkWithoutLastName(t *testing.T) {
	got := UserLink(42, "João", "")
	want := `<a href="tg://user?id=42">João</a>`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUserLinkEscapesName(t *testing.T) {
	got := UserLink(42, "<script>", "")
	want := `<a href="tg://user?id=42">&lt;script&gt;</a>`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestSpecialDayEmoji(t *testing.T) {
	if got := SpecialDayEmoji(25, 12); got != "🎄" {
		t.Fatalf("expected christmas emoji, got %s", got)
	}
	if got := SpecialDayEmoji(14, 3); got != "📅" {
		t.Fatalf("expected default emoji, got %s", got)
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(time.Sunday); got != "Domingo" {
		t.Fatalf("got %s", got)
	}
	if got := WeekdayName(time.Friday); got != "Sexta-feira" {
		t.Fatalf("got %s", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Fatal("same calendar day expected")
	}
	if SameDay(b, c) {
		t.Fatal("different calendar days expected")
	}
}
