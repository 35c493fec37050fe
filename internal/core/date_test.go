package core

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in    string
		year  int
		month int
		ok    bool
	}{
		{"2025-11", 2025, 11, true},
		{"2024-01", 2024, 1, true},
		{" 2025-06 ", 2025, 6, true},
		{"2025-13", 0, 0, false},
		{"2025-00", 0, 0, false},
		{"2025", 0, 0, false},
		{"abcd-ef", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMonth(tc.in)
		if tc.ok {
			if err != nil || got.Year != tc.year || got.Month != tc.month {
				t.Fatalf("%q expected %d-%d, got %v (err=%v)", tc.in, tc.year, tc.month, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMonthString(t *testing.T) {
	if got := (Month{Year: 2025, Month: 3}).String(); got != "2025-03" {
		t.Fatalf("expected 2025-03, got %q", got)
	}
}

func TestMonthPrev(t *testing.T) {
	cases := []struct {
		in, out Month
	}{
		{Month{2025, 11}, Month{2025, 10}},
		{Month{2025, 1}, Month{2024, 12}},
	}
	for _, tc := range cases {
		if got := tc.in.Prev(); got != tc.out {
			t.Fatalf("%v expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestMonthDays(t *testing.T) {
	cases := []struct {
		m    Month
		days int
	}{
		{Month{2025, 11}, 30},
		{Month{2025, 12}, 31},
		{Month{2024, 2}, 29}, // leap year
		{Month{2025, 2}, 28},
	}
	for _, tc := range cases {
		if got := tc.m.Days(); got != tc.days {
			t.Fatalf("%v expected %d days, got %d", tc.m, tc.days, got)
		}
	}
}

func TestDateIn(t *testing.T) {
	d := NewDate(2025, 11, 15)
	if !d.In(Month{2025, 11}) {
		t.Fatal("expected date in 2025-11")
	}
	if d.In(Month{2025, 10}) {
		t.Fatal("did not expect date in 2025-10")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 11 || d.Day() != 5 {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.String() != "2025-11-05" {
		t.Fatalf("round trip failed: %q", d.String())
	}

	if _, err := ParseDate("05/11/2025"); err == nil {
		t.Fatal("expected error for wrong format")
	}
}

func TestMonthOf(t *testing.T) {
	m := MonthOf(time.Date(2025, 7, 20, 10, 30, 0, 0, time.UTC))
	if m != (Month{2025, 7}) {
		t.Fatalf("expected 2025-07, got %v", m)
	}
}
